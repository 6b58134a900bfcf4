package api

import (
	"fmt"
	"net/url"
)

// --- Entity Methods ---

func (c *Client) QueryEntities(params QueryParams) ([]Entity, error) {
	data, err := c.get(buildQuery("/api/entities", params))
	if err != nil {
		return nil, err
	}
	return decodeList[Entity](data)
}

func (c *Client) UpdateEntity(id string, input UpdateEntityInput) (*Entity, error) {
	data, err := c.patch(fmt.Sprintf("/api/entities/%s", url.PathEscape(id)), input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Entity](data)
}

// UpdateEntityTags replaces the entity's tag set with tags.
func (c *Client) UpdateEntityTags(id string, tags []string) (*Entity, error) {
	if tags == nil {
		tags = []string{}
	}
	return c.UpdateEntity(id, UpdateEntityInput{Tags: &tags})
}

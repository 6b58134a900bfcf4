package api

// ListTags returns the full tag directory in server order.
func (c *Client) ListTags() ([]Tag, error) {
	data, err := c.get("/api/tags")
	if err != nil {
		return nil, err
	}
	return decodeBareOrList[Tag](data)
}

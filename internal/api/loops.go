package api

// ListOpenLoops returns the current reminder feed.
func (c *Client) ListOpenLoops() ([]OpenLoop, error) {
	data, err := c.get("/api/open-loops")
	if err != nil {
		return nil, err
	}
	return decodeList[OpenLoop](data)
}

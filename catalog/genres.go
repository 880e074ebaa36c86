package catalog

import "github.com/sebastiantruijens/vincent/movie"

// GenreCache maps genre ids to names. It is filled once and read-only after.
type GenreCache struct {
	list []movie.Genre
	byID map[int]string
}

// Fill stores genres unless the cache already holds some. It reports
// whether the genres were stored.
func (c *GenreCache) Fill(genres []movie.Genre) bool {
	if c.byID != nil || len(genres) == 0 {
		return false
	}
	c.byID = make(map[int]string, len(genres))
	for _, g := range genres {
		if _, dup := c.byID[g.ID]; dup {
			continue
		}
		c.byID[g.ID] = g.Name
		c.list = append(c.list, g)
	}
	return true
}

// Name returns the name of id.
func (c *GenreCache) Name(id int) (string, bool) {
	name, ok := c.byID[id]
	return name, ok
}

// List returns the genres in API order.
func (c *GenreCache) List() []movie.Genre {
	return c.list
}

// Len returns the number of cached genres.
func (c *GenreCache) Len() int {
	return len(c.list)
}

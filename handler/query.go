package handler

import (
	"strconv"
	"strings"

	"notemark/apperr"
	"notemark/repository"

	"github.com/gin-gonic/gin"
)

// listOptions reads q, tags and favorite from the query string. An empty favorite
// value counts as absent.
func listOptions(c *gin.Context) (repository.ListOptions, error) {
	opts := repository.ListOptions{
		Query: strings.TrimSpace(c.Query("q")),
		Tags:  repository.ParseTagList(c.Query("tags")),
	}

	if raw := strings.TrimSpace(c.Query("favorite")); raw != "" {
		favorite, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, apperr.ValidationField("favorite", "Favorite must be true or false")
		}
		opts.Favorite = &favorite
	}

	return opts, nil
}

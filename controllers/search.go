package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rclinic-backend/services"
	"rclinic-backend/utils"
)

type SearchController struct {
	search *services.SearchService
}

func NewSearchController(search *services.SearchService) *SearchController {
	return &SearchController{search: search}
}

// GetCatalog returns the cities, sectors and specialties of the search form.
func (sc *SearchController) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, sc.search.Catalog())
}

// SearchSpecialists filters by ?ciudad=&sector=&especialidad=.
func (sc *SearchController) SearchSpecialists(c *gin.Context) {
	var q services.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	results, err := sc.search.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Failed to search specialists")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"query":   q,
		"results": results,
		"count":   len(results),
	})
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rclinic-backend/crud"
	"rclinic-backend/store"
	"rclinic-backend/utils"
)

// CRUDController exposes one admin table over HTTP. Every request gets its
// own crud.Editor, so the list/form state machine lives for one call.
type CRUDController[T store.Entity[K], K comparable] struct {
	schema  *crud.Schema[T, K]
	repo    store.Repository[T, K]
	parseID func(string) (K, error)
}

func NewCRUDController[T store.Entity[K], K comparable](schema *crud.Schema[T, K], repo store.Repository[T, K], parseID func(string) (K, error)) *CRUDController[T, K] {
	return &CRUDController[T, K]{schema: schema, repo: repo, parseID: parseID}
}

func ParseInt64ID(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

func ParseStringID(s string) (string, error) {
	if s == "" {
		return "", errors.New("empty id")
	}
	return s, nil
}

func ParseUUID(s string) (uuid.UUID, error) { return uuid.Parse(s) }

// Register mounts the table routes on rg.
func (cc *CRUDController[T, K]) Register(rg *gin.RouterGroup) {
	rg.GET("", cc.List)
	rg.GET("/schema", cc.Schema)
	rg.GET("/:id", cc.Get)
	rg.POST("", cc.Create)
	rg.PUT("/:id", cc.Update)
	rg.PATCH("/:id/toggle", cc.Toggle)
	rg.DELETE("/:id", cc.Delete)
}

func (cc *CRUDController[T, K]) editor() *crud.Editor[T, K] {
	return crud.NewEditor(cc.schema, cc.repo)
}

func (cc *CRUDController[T, K]) id(c *gin.Context) (K, bool) {
	id, err := cc.parseID(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+cc.schema.Name+" ID format")
		return id, false
	}
	return id, true
}

func (cc *CRUDController[T, K]) List(c *gin.Context) {
	records, err := cc.editor().List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve "+cc.schema.Name)
		return
	}
	c.JSON(http.StatusOK, records)
}

// Schema returns the form description and the defaults a new record starts
// from.
func (cc *CRUDController[T, K]) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":     cc.schema.Name,
		"fields":   cc.schema.Fields,
		"defaults": cc.editor().New(),
	})
}

func (cc *CRUDController[T, K]) Get(c *gin.Context) {
	id, ok := cc.id(c)
	if !ok {
		return
	}
	record, err := cc.repo.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve "+cc.schema.Name)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Create binds the body over the schema defaults and appends the record
// under a fresh id.
func (cc *CRUDController[T, K]) Create(c *gin.Context) {
	ed := cc.editor()
	draft := ed.New()
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	saved, err := ed.Save(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err, "Failed to create "+cc.schema.Name)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// Update binds the body over the stored record, so omitted fields keep
// their values, and replaces it by id.
func (cc *CRUDController[T, K]) Update(c *gin.Context) {
	id, ok := cc.id(c)
	if !ok {
		return
	}
	ed := cc.editor()
	draft, err := ed.Edit(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve "+cc.schema.Name)
		return
	}
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	saved, err := ed.Save(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err, "Failed to update "+cc.schema.Name)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (cc *CRUDController[T, K]) Toggle(c *gin.Context) {
	id, ok := cc.id(c)
	if !ok {
		return
	}
	record, err := cc.editor().ToggleStatus(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to update "+cc.schema.Name)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Delete requires ?confirm=true. Without it the prompt is returned with a
// 409 and nothing is removed.
func (cc *CRUDController[T, K]) Delete(c *gin.Context) {
	id, ok := cc.id(c)
	if !ok {
		return
	}
	var prompt string
	confirmed := c.Query("confirm") == "true"
	err := cc.editor().Delete(c.Request.Context(), id, crud.ConfirmFunc(func(p string) bool {
		prompt = p
		return confirmed
	}))
	if errors.Is(err, crud.ErrDeleteDeclined) {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Deletion not confirmed", "prompt": prompt})
		return
	}
	if err != nil {
		respondError(c, err, "Failed to delete "+cc.schema.Name)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": cc.schema.Name + " deleted successfully"})
}

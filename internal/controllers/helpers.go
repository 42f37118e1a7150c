package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Helton-Amalique/school-bus-app-api/internal/models"
	"github.com/Helton-Amalique/school-bus-app-api/internal/policy"
)

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// principal pulls the authenticated identity out of the context; aborts
// with 401 when the claims are missing or malformed.
func principal(c *gin.Context) (policy.Principal, bool) {
	p, ok := policy.FromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	}
	return p, ok
}

// requireAdmin aborts with 403 unless the principal is an admin.
func requireAdmin(c *gin.Context) (policy.Principal, bool) {
	p, ok := principal(c)
	if !ok {
		return p, false
	}
	if !p.IsAdmin() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return p, false
	}
	return p, true
}

// isUniqueViolation reports whether err is a duplicate-key failure, either
// as a raw Postgres 23505 or as GORM's translated error.
func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// respondSaveError maps a failed write to the right status: per-field 400
// for validation failures, 409 for uniqueness conflicts, 500 otherwise.
func respondSaveError(c *gin.Context, err error) {
	var fieldErrs models.FieldErrors
	if errors.As(err, &fieldErrs) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}
	if isUniqueViolation(err) {
		c.JSON(http.StatusConflict, gin.H{"error": "registro duplicado"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// respondNotFound keeps "nonexistent" and "filtered out of scope"
// indistinguishable.
func respondNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "registro não encontrado"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peerdial/signaling/internal/store"
)

// ListRecords returns every persisted call record in append order.
func ListRecords(callLog *store.CallLog) gin.HandlerFunc {
	return func(c *gin.Context) {
		records := callLog.LoadAll()
		if records == nil {
			records = []store.Record{}
		}
		c.JSON(http.StatusOK, gin.H{"records": records})
	}
}

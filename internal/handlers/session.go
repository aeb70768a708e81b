package handlers

import (
	"net/http"
	"strconv"

	appsession "github.com/Lappanawat/flowmind-ranocturia/internal/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const sessionIDKey = "sessionID"

// currentSession resolves the visitor's cookie to their in-process session,
// creating one (and setting the cookie) on first contact or after a restart.
func currentSession(c *gin.Context, store *appsession.Store) *appsession.Session {
	cookie := sessions.Default(c)
	id, _ := cookie.Get(sessionIDKey).(string)

	sess := store.GetOrCreate(id)
	if sess.ID != id {
		cookie.Set(sessionIDKey, sess.ID)
		_ = cookie.Save()
	}
	return sess
}

// dayParam parses the 1-based day from the route, 0 when out of range.
func dayParam(c *gin.Context) int {
	n, err := strconv.Atoi(c.Param("day"))
	if err != nil || n < 1 || n > appsession.DayCount {
		return 0
	}
	return n
}

func abortNotFound(c *gin.Context) {
	c.String(http.StatusNotFound, "No such day")
	c.Abort()
}

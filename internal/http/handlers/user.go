package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/safakhan413/user-data-api/internal/domain"
	"github.com/safakhan413/user-data-api/internal/http/response"
	pkgerrors "github.com/safakhan413/user-data-api/internal/pkg/errors"
	"github.com/safakhan413/user-data-api/internal/pkg/logger"
	"github.com/safakhan413/user-data-api/internal/services"
)

type UserHandler struct {
	log       *logger.Logger
	directory services.DirectoryService
}

func NewUserHandler(log *logger.Logger, directory services.DirectoryService) *UserHandler {
	handlerLog := log.With("handler", "UserHandler")
	return &UserHandler{log: handlerLog, directory: directory}
}

// GET /users/?start_time=&end_time=&parameter=
func (uh *UserHandler) GetUsers(c *gin.Context) {
	q, err := parseUserQuery(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	users, err := uh.directory.ListUsers(c.Request.Context(), q)
	if err != nil {
		uh.respondListError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /users/download?start_time=&end_time=&parameter=
//
// Streams the result as CSV, one flush per row, so large exports never buffer
// fully in memory on the way out.
func (uh *UserHandler) DownloadUsers(c *gin.Context) {
	q, err := parseUserQuery(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	users, err := uh.directory.ListUsers(c.Request.Context(), q)
	if err != nil {
		uh.respondListError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename=users.csv`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if err := w.Write([]string{"ID", "UserID", "OriginationTime", "ClusterID", "Phones", "Voicemails"}); err != nil {
		uh.log.Warn("CSV header write failed", "error", err)
		return
	}
	w.Flush()
	c.Writer.Flush()

	for _, u := range users {
		if err := w.Write(csvRecord(u)); err != nil {
			uh.log.Warn("CSV row write failed", "user_id", u.ID, "error", err)
			return
		}
		w.Flush()
		c.Writer.Flush()
	}
}

func (uh *UserHandler) respondListError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrInvalidRange):
		response.RespondError(c, http.StatusBadRequest, "invalid_range", err)
	case errors.Is(err, pkgerrors.ErrInvalidParameter):
		response.RespondError(c, http.StatusBadRequest, "invalid_parameter", err)
	default:
		uh.log.Error("User listing failed", "error", err)
		response.RespondInternalError(c)
	}
}

func parseUserQuery(c *gin.Context) (services.UserQuery, error) {
	startStr := c.Query("start_time")
	endStr := c.Query("end_time")
	if startStr == "" || endStr == "" {
		return services.UserQuery{}, fmt.Errorf("start_time and end_time are required")
	}
	startTime, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil {
		return services.UserQuery{}, fmt.Errorf("start_time must be an integer timestamp")
	}
	endTime, err := strconv.ParseInt(endStr, 10, 64)
	if err != nil {
		return services.UserQuery{}, fmt.Errorf("end_time must be an integer timestamp")
	}
	return services.UserQuery{
		StartTime: startTime,
		EndTime:   endTime,
		Parameter: c.Query("parameter"),
	}, nil
}

func csvRecord(u *types.User) []string {
	clusterID := ""
	if u.ClusterID != nil {
		clusterID = *u.ClusterID
	}
	phones := make([]string, 0, len(u.Phones))
	for _, p := range u.Phones {
		phones = append(phones, p.Identifier)
	}
	voicemails := make([]string, 0, len(u.Voicemails))
	for _, vm := range u.Voicemails {
		voicemails = append(voicemails, vm.Identifier)
	}
	return []string{
		strconv.Itoa(u.ID),
		u.UserID,
		strconv.FormatInt(u.OriginationTime, 10),
		clusterID,
		strings.Join(phones, ";"),
		strings.Join(voicemails, ";"),
	}
}

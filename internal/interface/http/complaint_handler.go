package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/complaint-desk/internal/application"
	"github.com/oksasatya/complaint-desk/internal/domain/entity"
	"github.com/oksasatya/complaint-desk/internal/interface/middleware"
	"github.com/oksasatya/complaint-desk/pkg/response"
)

type ComplaintHandler struct {
	Complaints *application.ComplaintService
	Logger     *logrus.Logger
}

func NewComplaintHandler(complaints *application.ComplaintService, logger *logrus.Logger) *ComplaintHandler {
	return &ComplaintHandler{Complaints: complaints, Logger: logger}
}

// Any owner field in the body is ignored; the caller always owns the
// complaint.
type submitRequest struct {
	Category    string `json:"category" binding:"required,notblank"`
	Subject     string `json:"subject" binding:"required,notblank"`
	Description string `json:"description" binding:"required,notblank"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type ownerJSON struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type complaintJSON struct {
	ID          string    `json:"_id"`
	User        any       `json:"user"`
	Category    string    `json:"category"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Date        time.Time `json:"date"`
}

type statusResponse struct {
	Message   string        `json:"message"`
	Complaint complaintJSON `json:"complaint"`
}

// toJSON renders the owner as an id, or as a populated object (null when
// the owner is gone) for listings that join users.
func toJSON(c entity.Complaint, populate bool) complaintJSON {
	out := complaintJSON{
		ID:          c.ID,
		User:        c.UserID,
		Category:    c.Category,
		Subject:     c.Subject,
		Description: c.Description,
		Status:      string(c.Status),
		Date:        c.Date,
	}
	if populate {
		if c.Owner != nil {
			out.User = ownerJSON{ID: c.Owner.ID, FullName: c.Owner.FullName, Email: c.Owner.Email}
		} else {
			out.User = nil
		}
	}
	return out
}

func toJSONList(list []entity.Complaint, populate bool) []complaintJSON {
	out := make([]complaintJSON, 0, len(list))
	for _, c := range list {
		out = append(out, toJSON(c, populate))
	}
	return out
}

// Submit POST /api/complaints
func (h *ComplaintHandler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, invalidPayload(err))
		return
	}
	_, err := h.Complaints.Submit(c.Request.Context(), middleware.UserID(c), application.SubmitInput{
		Category:    req.Category,
		Subject:     req.Subject,
		Description: req.Description,
	})
	if err != nil {
		fail(c, withEntity("User", err))
		return
	}
	response.Message(c, http.StatusCreated, "Complaint submitted successfully")
}

// ListAll GET /api/complaints/all
func (h *ComplaintHandler) ListAll(c *gin.Context) {
	list, err := h.Complaints.ListAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, toJSONList(list, true))
}

// ListMine GET /api/complaints/my
func (h *ComplaintHandler) ListMine(c *gin.Context) {
	list, err := h.Complaints.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, toJSONList(list, false))
}

// UpdateStatus PUT /api/complaints/:id/status (admin)
func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	// a missing or malformed body leaves Status empty, which is an invalid status
	_ = c.ShouldBindJSON(&req)

	id := c.Param("id")
	updated, err := h.Complaints.ChangeStatus(c.Request.Context(), middleware.IsAdmin(c), id, req.Status)
	if err != nil {
		fail(c, withEntity("Complaint", err))
		return
	}
	response.JSON(c, http.StatusOK, statusResponse{
		Message:   fmt.Sprintf("Complaint %s updated to %s", id, updated.Status),
		Complaint: toJSON(*updated, false),
	})
}

// Search GET /api/complaints/search?q=&size= (admin)
func (h *ComplaintHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	list, err := h.Complaints.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, toJSONList(list, false))
}

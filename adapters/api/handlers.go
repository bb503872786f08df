package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"qiming/domain/history"
	"qiming/domain/name"
	"qiming/internal/errors"
)

// generateRequest is the wire form of a naming request. Count is a
// pointer so an absent field can default to 10 while an explicit 0 stays
// 0.
type generateRequest struct {
	Surname     string          `json:"surname"`
	Gender      string          `json:"gender"`
	BirthDate   string          `json:"birthDate"`
	Preferences []string        `json:"preferences"`
	Sources     []string        `json:"sources"`
	Count       *int            `json:"count"`
	FixedChar   *name.FixedChar `json:"fixedChar"`
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.ValidationError("请求格式无效"))
		return
	}

	input := name.Input{
		Surname:     req.Surname,
		Gender:      name.Gender(req.Gender),
		Preferences: req.Preferences,
		FixedChar:   req.FixedChar,
		Count:       10,
	}
	if input.Gender == "" {
		input.Gender = name.GenderNeutral
	}
	if req.Count != nil {
		input.Count = *req.Count
	}
	for _, src := range req.Sources {
		input.Sources = append(input.Sources, name.Source(src))
	}
	if req.BirthDate != "" {
		t, err := parseBirthDate(req.BirthDate)
		if err != nil {
			s.respondError(c, errors.ValidationError("出生日期格式无效"))
			return
		}
		input.BirthDate = &t
	}

	records, err := s.naming.Generate(c.Request.Context(), identityFrom(c), input)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"records": records}})
}

func parseBirthDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.ValidationError("unsupported date layout")
}

func (s *Server) handleHistory(c *gin.Context) {
	opts := history.ListOptions{}
	if v := c.Query("limit"); v != "" {
		opts.Limit, _ = strconv.Atoi(v)
	}
	if v := c.Query("offset"); v != "" {
		opts.Offset, _ = strconv.Atoi(v)
	}
	opts.OnlyFavorites = c.Query("onlyFavorites") == "true"

	page, err := s.history.List(c.Request.Context(), identityFrom(c), opts)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": page})
}

func (s *Server) handleExport(c *gin.Context) {
	f, err := s.history.Export(c.Request.Context(), identityFrom(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="names.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		s.logger.Error("streaming export failed: %v", err)
	}
}

type favoriteRequest struct {
	ID     int64  `json:"id"`
	Action string `json:"action"` // toggle, note, delete
	Note   string `json:"note"`
}

func (s *Server) handleFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		s.respondError(c, errors.ValidationError("请求格式无效"))
		return
	}
	id := identityFrom(c)
	ctx := c.Request.Context()

	switch req.Action {
	case "toggle", "":
		favorite, err := s.history.ToggleFavorite(ctx, req.ID, id)
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"isFavorite": favorite}})
	case "note":
		if err := s.history.Annotate(ctx, req.ID, req.Note, id); err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	case "delete":
		if err := s.history.Delete(ctx, req.ID, id); err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	default:
		s.respondError(c, errors.ValidationError("未知操作: "+req.Action))
	}
}

type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleAuth(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.ValidationError("请求格式无效"))
		return
	}
	result, err := s.auth.Login(c.Request.Context(), req.Username, req.Password, identityFrom(c).SessionID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

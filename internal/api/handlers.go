package api

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/ukaji3/seatplan-go/internal/logging"
	"github.com/ukaji3/seatplan-go/pkg/seatplan"
	"github.com/ukaji3/seatplan-go/pkg/seatplan/models"
	"github.com/ukaji3/seatplan-go/pkg/seatplan/xlsxio"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type createGuestRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Size     int    `json:"size"`
}

type updateGuestRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Size     *int    `json:"size"`
}

type guestResponse struct {
	Guest    models.Guest `json:"guest"`
	Unseated bool         `json:"unseated"`
}

type seatRequest struct {
	TableID *int `json:"table_id"`
}

type createTableRequest struct {
	Name     string `json:"name"`
	Capacity *int   `json:"capacity"`
	X        *int   `json:"x"`
	Y        *int   `json:"y"`
}

type updateTableRequest struct {
	ID       *int    `json:"id"`
	Name     *string `json:"name"`
	Capacity *int    `json:"capacity"`
	X        *int    `json:"x"`
	Y        *int    `json:"y"`
}

type tableResponse struct {
	Table    models.Table `json:"table"`
	Unseated []int        `json:"unseated"`
}

type loadResponse struct {
	Stats seatplan.Stats `json:"stats"`
}

type headersResponse struct {
	Headers []string `json:"headers"`
}

type importResponse struct {
	Created int            `json:"created"`
	Seats   int            `json:"seats"`
	Skipped int            `json:"skipped"`
	Stats   seatplan.Stats `json:"stats"`
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.plan.Document())
}

func (s *Server) handlePutPlan(w http.ResponseWriter, r *http.Request) {
	var doc seatplan.Document
	if err := decodeJSON(r, &doc); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.plan.ApplyDocument(doc); err != nil {
		respondLoadError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, loadResponse{Stats: s.plan.Stats()})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.plan.Stats())
}

func (s *Server) handleListGuests(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.URL.Query().Get("unseated") == "true" {
		respondJSON(w, http.StatusOK, nonNil(s.plan.UnseatedGuests()))
		return
	}
	respondJSON(w, http.StatusOK, s.plan.Guests())
}

func (s *Server) handleGetGuest(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.plan.Guest(id)
	if !ok {
		notFound(w, r, "guest", id)
		return
	}
	respondJSON(w, http.StatusOK, g)
}

func (s *Server) handleCreateGuest(w http.ResponseWriter, r *http.Request) {
	var req createGuestRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, errors.New("name is required"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusCreated, s.plan.AddGuest(name, strings.TrimSpace(req.Category), req.Size))
}

func (s *Server) handleUpdateGuest(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	var req updateGuestRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, errors.New("name must not be empty"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.plan.Guest(id)
	if !ok {
		notFound(w, r, "guest", id)
		return
	}
	name, category, size := g.Name, g.Category, g.Size
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		category = strings.TrimSpace(*req.Category)
	}
	if req.Size != nil {
		size = *req.Size
	}

	unseated, _ := s.plan.UpdateGuest(id, name, category, size)
	g, _ = s.plan.Guest(id)
	respondJSON(w, http.StatusOK, guestResponse{Guest: g, Unseated: unseated})
}

func (s *Server) handleDeleteGuest(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plan.Guest(id); !ok {
		notFound(w, r, "guest", id)
		return
	}
	s.plan.RemoveGuest(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSeatGuest(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	var req seatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	if req.TableID == nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, errors.New("table_id is required"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plan.Guest(id); !ok {
		notFound(w, r, "guest", id)
		return
	}
	if _, ok := s.plan.Table(*req.TableID); !ok {
		notFound(w, r, "table", *req.TableID)
		return
	}
	if !s.plan.AssignGuestToTable(id, *req.TableID) {
		respondError(w, r, http.StatusConflict, CodeConflict, errors.New("table does not have enough free seats"))
		return
	}
	g, _ := s.plan.Guest(id)
	respondJSON(w, http.StatusOK, g)
}

func (s *Server) handleUnseatGuest(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plan.Guest(id); !ok {
		notFound(w, r, "guest", id)
		return
	}
	s.plan.UnseatGuest(id)
	g, _ := s.plan.Guest(id)
	respondJSON(w, http.StatusOK, g)
}

func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.plan.Tables())
}

func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.plan.Table(id)
	if !ok {
		notFound(w, r, "table", id)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	var req createTableRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, errors.New("name is required"))
		return
	}
	capacity := s.opts.DefaultTableCapacity
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	if capacity < 0 {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, errors.New("capacity must be non-negative"))
		return
	}
	x, y := seatplan.DefaultTableX, seatplan.DefaultTableY
	if req.X != nil {
		x = *req.X
	}
	if req.Y != nil {
		y = *req.Y
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusCreated, s.plan.AddTableAt(name, capacity, x, y))
}

func (s *Server) handleUpdateTable(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	var req updateTableRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, errors.New("name must not be empty"))
		return
	}
	if req.Capacity != nil && *req.Capacity < 0 {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, errors.New("capacity must be non-negative"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.plan.Table(id)
	if !ok {
		notFound(w, r, "table", id)
		return
	}

	if req.ID != nil && *req.ID != id {
		if !s.plan.RenumberTable(id, *req.ID) {
			respondError(w, r, http.StatusConflict, CodeConflict, errors.New("table id must be positive and unused"))
			return
		}
		id = *req.ID
	}

	name, capacity := t.Name, t.Capacity
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	unseated, _ := s.plan.UpdateTable(id, name, capacity)

	if req.X != nil || req.Y != nil {
		x, y := t.X, t.Y
		if req.X != nil {
			x = *req.X
		}
		if req.Y != nil {
			y = *req.Y
		}
		s.plan.MoveTable(id, x, y)
	}

	t, _ = s.plan.Table(id)
	respondJSON(w, http.StatusOK, tableResponse{Table: t, Unseated: nonNil(unseated)})
}

func (s *Server) handleDeleteTable(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plan.Table(id); !ok {
		notFound(w, r, "table", id)
		return
	}
	s.plan.RemoveTable(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLoadWorkbook(w http.ResponseWriter, r *http.Request) {
	clearPlan, err := boolQuery(r, "clear", true)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxUpload)

	s.mu.Lock()
	defer s.mu.Unlock()
	opts := xlsxio.LoadOptions{Clear: clearPlan, Logger: logging.FromContext(r.Context())}
	if err := xlsxio.Read(body, s.plan, opts); err != nil {
		respondLoadError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, loadResponse{Stats: s.plan.Stats()})
}

func (s *Server) handleSaveWorkbook(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	var buf bytes.Buffer
	err := xlsxio.Write(s.plan, &buf)
	s.mu.Unlock()
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	writeWorkbook(w, "seating-plan.xlsx", buf.Bytes())
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	var buf bytes.Buffer
	err := xlsxio.WriteSummaryTo(s.plan, &buf)
	s.mu.Unlock()
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	writeWorkbook(w, "seating-summary.xlsx", buf.Bytes())
}

func (s *Server) handleHeaders(w http.ResponseWriter, r *http.Request) {
	headers, err := xlsxio.ReadHeaders(http.MaxBytesReader(w, r.Body, s.opts.MaxUpload))
	if err != nil {
		respondLoadError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, headersResponse{Headers: headers})
}

func (s *Server) handleImportGroups(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := xlsxio.ImportOptions{
		GroupColumn:    q.Get("group"),
		CountColumn:    q.Get("count"),
		CategoryColumn: q.Get("category"),
		Logger:         logging.FromContext(r.Context()),
	}
	if opts.GroupColumn == "" || opts.CountColumn == "" {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, errors.New("group and count query parameters are required"))
		return
	}
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxUpload)

	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := xlsxio.ReadGroups(body, s.plan, opts)
	if err != nil {
		respondLoadError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, importResponse{
		Created: res.Created,
		Seats:   res.Seats,
		Skipped: res.Skipped,
		Stats:   s.plan.Stats(),
	})
}

func writeWorkbook(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

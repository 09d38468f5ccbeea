package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/boxboard/apiserver/types"
)

// AssignmentsPage handles GET /assegnazioni. Items, activities and
// users are loaded alongside for the create form and for resolving
// names in the table.
func (s *Server) AssignmentsPage(w http.ResponseWriter, r *http.Request) {
	user := webUser(r.Context())

	assignments, err := s.deps.Assignments.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list assignments")
	}
	items, err := s.deps.Items.List(r.Context(), types.ItemFilter{})
	if err != nil {
		log.Error().Err(err).Msg("failed to list items")
	}
	activities, err := s.deps.Activities.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list activities")
	}
	users, err := s.deps.Users.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
	}

	itemNames := make(map[int]string, len(items))
	for _, item := range items {
		itemNames[item.ID] = item.Name
	}
	activityNames := make(map[int]string, len(activities))
	for _, activity := range activities {
		activityNames[activity.ID] = activity.Name
	}
	userNames := make(map[int]string, len(users))
	for _, u := range users {
		userNames[u.ID] = u.Name
	}

	s.templates.Render(w, "assegnazioni.html", &struct {
		PageData
		Assignments   []types.Assignment
		Items         []types.Item
		Activities    []types.Activity
		Users         []types.User
		ItemNames     map[int]string
		ActivityNames map[int]string
		UserNames     map[int]string
	}{
		PageData:      PageData{Title: "Assegnazioni", User: user},
		Assignments:   assignments,
		Items:         items,
		Activities:    activities,
		Users:         users,
		ItemNames:     itemNames,
		ActivityNames: activityNames,
		UserNames:     userNames,
	})
}

// AssignmentCreateSubmit handles POST /assegnazioni.
func (s *Server) AssignmentCreateSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.requireCoordinator(w, r) {
		return
	}

	itemID, _ := strconv.Atoi(r.FormValue("oggetto_id"))
	activityID, _ := strconv.Atoi(r.FormValue("attivita_id"))
	if itemID < 1 || activityID < 1 {
		http.Redirect(w, r, basePath+"/assegnazioni", http.StatusSeeOther)
		return
	}

	assignment := types.Assignment{
		ItemID:     itemID,
		ActivityID: activityID,
	}
	if raw := r.FormValue("assegnato_a"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			assignment.AssigneeID = &id
		}
	}
	if raw := r.FormValue("data_prevista"); raw != "" {
		if planned, err := time.Parse("2006-01-02", raw); err == nil {
			assignment.PlannedDate = &planned
		}
	}

	if _, err := s.deps.Assignments.Create(r.Context(), assignment, webUser(r.Context()).ID); err != nil {
		log.Error().Err(err).Msg("failed to create assignment")
	}
	http.Redirect(w, r, basePath+"/assegnazioni", http.StatusSeeOther)
}

// AssignmentCompleteSubmit handles POST /assegnazioni/{assignmentID}/complete.
func (s *Server) AssignmentCompleteSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.requireCoordinator(w, r) {
		return
	}

	id, err := pathID(r, "assignmentID")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	completed := true
	patch := types.AssignmentPatch{Completed: &completed}
	if _, err := s.deps.Assignments.Update(r.Context(), id, patch, webUser(r.Context()).ID); err != nil {
		log.Error().Err(err).Int("assegnazioneID", id).Msg("failed to complete assignment")
	}
	http.Redirect(w, r, basePath+"/assegnazioni", http.StatusSeeOther)
}

// AssignmentDeleteSubmit handles POST /assegnazioni/{assignmentID}/delete.
func (s *Server) AssignmentDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.requireCoordinator(w, r) {
		return
	}

	id, err := pathID(r, "assignmentID")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := s.deps.Assignments.Delete(r.Context(), id, webUser(r.Context()).ID); err != nil {
		log.Error().Err(err).Int("assegnazioneID", id).Msg("failed to delete assignment")
	}
	http.Redirect(w, r, basePath+"/assegnazioni", http.StatusSeeOther)
}

package lists

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/louisbranch/todolists/internal/services/todolists/domain"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/apperrors"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/flash"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/httpx"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/modulehandler"
	"github.com/louisbranch/todolists/internal/services/todolists/platform/requestmeta"
	"github.com/louisbranch/todolists/internal/services/todolists/routepath"
	"github.com/louisbranch/todolists/internal/services/todolists/templates"
)

const (
	formListName  = "list_name"
	formTodoName  = "todo"
	formCompleted = "completed"
)

type handlers struct {
	modulehandler.Base
	sessions Sessions
	mode     httpx.ResponseMode
}

func newHandlers(sessions Sessions, mode httpx.ResponseMode, policy requestmeta.SchemePolicy) handlers {
	return handlers{Base: modulehandler.NewBase(policy), sessions: sessions, mode: mode}
}

func (h handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	httpx.WriteRedirect(w, r, routepath.Lists)
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	state, err := h.sessions.View(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, templates.T(loc, "lists.index.title"), http.StatusOK,
		templates.ListsIndex(mapListSummaries(state.Lists), loc))
}

func (h handlers) handleNew(w http.ResponseWriter, r *http.Request) {
	h.renderNewList(w, r, http.StatusOK, templates.FormState{})
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	name := r.FormValue(formListName)
	_, err := h.sessions.Update(w, r, func(s *domain.Store) error {
		_, err := s.CreateList(name)
		return err
	})
	if verr, ok := domain.AsValidationError(err); ok {
		loc, _ := h.PageLocalizer(w, r)
		h.renderNewList(w, r, http.StatusUnprocessableEntity, templates.FormState{Value: name, Error: validationMessage(loc, verr)})
		return
	}
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WriteFlash(w, r, flash.Success("lists.notice.created"))
	httpx.WriteRedirect(w, r, routepath.Lists)
}

func (h handlers) handleShow(w http.ResponseWriter, r *http.Request) {
	list, ok := h.viewList(w, r, "id")
	if !ok {
		return
	}
	h.renderList(w, r, http.StatusOK, list, templates.FormState{})
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	list, ok := h.viewList(w, r, "id")
	if !ok {
		return
	}
	h.renderEditList(w, r, http.StatusOK, list, templates.FormState{Value: list.Name})
}

func (h handlers) handleRename(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "id")
	if !ok {
		h.listNotFound(w, r)
		return
	}
	if !h.parseForm(w, r) {
		return
	}
	name := r.FormValue(formListName)
	state, err := h.sessions.Update(w, r, func(s *domain.Store) error {
		return s.RenameList(listID, name)
	})
	if h.handleMutationError(w, r, err) {
		return
	}
	if verr, ok := domain.AsValidationError(err); ok {
		list, _ := state.FindList(listID)
		loc, _ := h.PageLocalizer(w, r)
		h.renderEditList(w, r, http.StatusUnprocessableEntity, list, templates.FormState{Value: name, Error: validationMessage(loc, verr)})
		return
	}
	h.WriteFlash(w, r, flash.Success("lists.notice.updated"))
	httpx.WriteRedirect(w, r, routepath.List(listID))
}

func (h handlers) handleDestroy(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "id")
	if !ok {
		h.listNotFound(w, r)
		return
	}
	_, err := h.sessions.Update(w, r, func(s *domain.Store) error {
		if _, found := s.FindList(listID); !found {
			return domain.ErrListNotFound
		}
		s.DeleteList(listID)
		return nil
	})
	if h.handleMutationError(w, r, err) {
		return
	}
	if h.mode.WantsEmptyResponse(r) {
		httpx.WriteNoContent(w)
		return
	}
	h.WriteFlash(w, r, flash.Success("lists.notice.deleted"))
	httpx.WriteRedirect(w, r, routepath.Lists)
}

func (h handlers) handleCompleteAll(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "id")
	if !ok {
		h.listNotFound(w, r)
		return
	}
	_, err := h.sessions.Update(w, r, func(s *domain.Store) error {
		if _, found := s.FindList(listID); !found {
			return domain.ErrListNotFound
		}
		s.CompleteAll(listID)
		return nil
	})
	if h.handleMutationError(w, r, err) {
		return
	}
	h.WriteFlash(w, r, flash.Success("todos.notice.all_completed"))
	httpx.WriteRedirect(w, r, routepath.List(listID))
}

func (h handlers) handleAddTodo(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(r, "listID")
	if !ok {
		h.listNotFound(w, r)
		return
	}
	if !h.parseForm(w, r) {
		return
	}
	name := r.FormValue(formTodoName)
	state, err := h.sessions.Update(w, r, func(s *domain.Store) error {
		_, err := s.AddTodo(listID, name)
		return err
	})
	if h.handleMutationError(w, r, err) {
		return
	}
	if verr, ok := domain.AsValidationError(err); ok {
		list, _ := state.FindList(listID)
		loc, _ := h.PageLocalizer(w, r)
		h.renderList(w, r, http.StatusUnprocessableEntity, list, templates.FormState{Value: name, Error: validationMessage(loc, verr)})
		return
	}
	h.WriteFlash(w, r, flash.Success("todos.notice.added"))
	httpx.WriteRedirect(w, r, routepath.List(listID))
}

func (h handlers) handleToggleTodo(w http.ResponseWriter, r *http.Request) {
	listID, todoID, ok := todoPathIDs(r)
	if !ok {
		h.listNotFound(w, r)
		return
	}
	if !h.parseForm(w, r) {
		return
	}
	completed := r.FormValue(formCompleted) == "true"
	_, err := h.sessions.Update(w, r, func(s *domain.Store) error {
		if _, found := s.FindList(listID); !found {
			return domain.ErrListNotFound
		}
		s.SetTodoCompleted(listID, todoID, completed)
		return nil
	})
	if h.handleMutationError(w, r, err) {
		return
	}
	h.WriteFlash(w, r, flash.Success("todos.notice.updated"))
	httpx.WriteRedirect(w, r, routepath.List(listID))
}

func (h handlers) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	listID, todoID, ok := todoPathIDs(r)
	if !ok {
		h.listNotFound(w, r)
		return
	}
	_, err := h.sessions.Update(w, r, func(s *domain.Store) error {
		if _, found := s.FindList(listID); !found {
			return domain.ErrListNotFound
		}
		s.DeleteTodo(listID, todoID)
		return nil
	})
	if h.handleMutationError(w, r, err) {
		return
	}
	if h.mode.WantsEmptyResponse(r) {
		httpx.WriteNoContent(w)
		return
	}
	h.WriteFlash(w, r, flash.Success("todos.notice.deleted"))
	httpx.WriteRedirect(w, r, routepath.List(listID))
}

func (h handlers) handleClearAll(w http.ResponseWriter, r *http.Request) {
	_, err := h.sessions.Update(w, r, func(s *domain.Store) error {
		s.ClearAll()
		return nil
	})
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WriteFlash(w, r, flash.Success("lists.notice.cleared"))
	httpx.WriteRedirect(w, r, routepath.Lists)
}

// viewList resolves the list named by the path value key, answering with the
// not-found flow when it does not exist.
func (h handlers) viewList(w http.ResponseWriter, r *http.Request, key string) (domain.List, bool) {
	listID, ok := pathID(r, key)
	if !ok {
		h.listNotFound(w, r)
		return domain.List{}, false
	}
	state, err := h.sessions.View(r)
	if err != nil {
		h.WriteError(w, r, err)
		return domain.List{}, false
	}
	list, found := state.FindList(listID)
	if !found {
		h.listNotFound(w, r)
		return domain.List{}, false
	}
	return list, true
}

// handleMutationError writes the response for failures other than validation
// and reports whether it did.
func (h handlers) handleMutationError(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, domain.ErrListNotFound) {
		h.listNotFound(w, r)
		return true
	}
	if _, ok := domain.AsValidationError(err); ok {
		return false
	}
	h.WriteError(w, r, err)
	return true
}

func (h handlers) listNotFound(w http.ResponseWriter, r *http.Request) {
	if h.mode.WantsEmptyResponse(r) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h.WriteFlash(w, r, flash.Error(domain.KeyListNotFound))
	httpx.WriteRedirect(w, r, routepath.Lists)
}

func (h handlers) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, err))
		return false
	}
	return true
}

func (h handlers) renderNewList(w http.ResponseWriter, r *http.Request, status int, form templates.FormState) {
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, templates.T(loc, "lists.new.title"), status, templates.NewListForm(form, loc))
}

func (h handlers) renderEditList(w http.ResponseWriter, r *http.Request, status int, list domain.List, form templates.FormState) {
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, templates.T(loc, "lists.edit.title", list.Name), status,
		templates.EditListForm(mapListSummary(list), form, loc))
}

func (h handlers) renderList(w http.ResponseWriter, r *http.Request, status int, list domain.List, form templates.FormState) {
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, list.Name, status, templates.ListPage(mapListDetail(list), form, loc))
}

// validationMessage localizes verr, keeping its English message when the
// catalog has no entry.
func validationMessage(loc templates.Localizer, verr *domain.ValidationError) string {
	message := templates.T(loc, verr.Key)
	if message == "" || message == verr.Key {
		return verr.Message
	}
	return message
}

func pathID(r *http.Request, key string) (int, bool) {
	value, err := strconv.Atoi(strings.TrimSpace(r.PathValue(key)))
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

func todoPathIDs(r *http.Request) (int, int, bool) {
	listID, ok := pathID(r, "listID")
	if !ok {
		return 0, 0, false
	}
	todoID, ok := pathID(r, "id")
	if !ok {
		return 0, 0, false
	}
	return listID, todoID, true
}

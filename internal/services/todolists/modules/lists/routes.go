package lists

import (
	"net/http"

	"github.com/louisbranch/todolists/internal/services/todolists/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleRoot)
	mux.HandleFunc(http.MethodGet+" "+routepath.Lists, h.handleIndex)
	mux.HandleFunc(http.MethodPost+" "+routepath.Lists, h.handleCreate)
	mux.HandleFunc(http.MethodGet+" "+routepath.NewList, h.handleNew)
	mux.HandleFunc(http.MethodGet+" "+routepath.ListPattern, h.handleShow)
	mux.HandleFunc(http.MethodPost+" "+routepath.ListPattern, h.handleRename)
	mux.HandleFunc(http.MethodGet+" "+routepath.ListEditPattern, h.handleEdit)
	mux.HandleFunc(http.MethodPost+" "+routepath.ListDestroyPattern, h.handleDestroy)
	mux.HandleFunc(http.MethodPost+" "+routepath.ListCompleteAllPattern, h.handleCompleteAll)
	mux.HandleFunc(http.MethodPost+" "+routepath.TodosPattern, h.handleAddTodo)
	mux.HandleFunc(http.MethodPost+" "+routepath.TodoPattern, h.handleToggleTodo)
	mux.HandleFunc(http.MethodPost+" "+routepath.TodoDestroyPattern, h.handleDeleteTodo)
	mux.HandleFunc(http.MethodGet+" "+routepath.ClearAll, h.handleClearAll)
}

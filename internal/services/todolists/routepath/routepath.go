// Package routepath stores canonical HTTP paths for the todolists service.
package routepath

import "strconv"

const (
	Root         = "/"
	Health       = "/up"
	StaticPrefix = "/static/"
	Stylesheet   = "/static/app.css"
	Lists        = "/lists"
	ListsPrefix  = "/lists/"
	NewList      = "/lists/new"
	ClearAll     = "/clear_all"

	ListPattern            = ListsPrefix + "{id}"
	ListEditPattern        = ListsPrefix + "{id}/edit"
	ListDestroyPattern     = ListsPrefix + "{id}/destroy"
	ListCompleteAllPattern = ListsPrefix + "{id}/complete_all"
	TodosPattern           = ListsPrefix + "{listID}/todos"
	TodoPattern            = ListsPrefix + "{listID}/todos/{id}"
	TodoDestroyPattern     = ListsPrefix + "{listID}/todos/{id}/destroy"
)

// List returns the list detail route.
func List(listID int) string {
	return ListsPrefix + strconv.Itoa(listID)
}

// ListEdit returns the rename form route.
func ListEdit(listID int) string {
	return List(listID) + "/edit"
}

// ListDestroy returns the delete-list route.
func ListDestroy(listID int) string {
	return List(listID) + "/destroy"
}

// ListCompleteAll returns the complete-all route.
func ListCompleteAll(listID int) string {
	return List(listID) + "/complete_all"
}

// Todos returns the add-todo route.
func Todos(listID int) string {
	return List(listID) + "/todos"
}

// Todo returns the toggle-todo route.
func Todo(listID, todoID int) string {
	return Todos(listID) + "/" + strconv.Itoa(todoID)
}

// TodoDestroy returns the delete-todo route.
func TodoDestroy(listID, todoID int) string {
	return Todo(listID, todoID) + "/destroy"
}

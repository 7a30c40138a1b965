package lists

import (
	"github.com/louisbranch/todolists/internal/services/todolists/domain"
	"github.com/louisbranch/todolists/internal/services/todolists/templates"
)

func mapListSummary(list domain.List) templates.ListSummary {
	return templates.ListSummary{
		ID:       list.ID,
		Name:     list.Name,
		Counter:  list.CompletionLabel(),
		Complete: list.IsComplete(),
	}
}

func mapListSummaries(lists []domain.List) []templates.ListSummary {
	ordered := domain.ListsInDisplayOrder(lists)
	summaries := make([]templates.ListSummary, 0, len(ordered))
	for _, list := range ordered {
		summaries = append(summaries, mapListSummary(list))
	}
	return summaries
}

func mapListDetail(list domain.List) templates.ListDetail {
	ordered := domain.TodosInDisplayOrder(list.Todos)
	todos := make([]templates.TodoItem, 0, len(ordered))
	for _, todo := range ordered {
		todos = append(todos, templates.TodoItem{ID: todo.ID, Name: todo.Name, Completed: todo.Completed})
	}
	return templates.ListDetail{ListSummary: mapListSummary(list), Todos: todos}
}

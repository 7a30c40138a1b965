package domain

import (
	"reflect"
	"testing"
)

func TestIsComplete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		todos []Todo
		want  bool
	}{
		{name: "empty", todos: nil, want: false},
		{name: "none completed", todos: []Todo{{ID: 1}}, want: false},
		{name: "some completed", todos: []Todo{{ID: 1, Completed: true}, {ID: 2}}, want: false},
		{name: "all completed", todos: []Todo{{ID: 1, Completed: true}, {ID: 2, Completed: true}}, want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := (List{Todos: tc.todos}).IsComplete(); got != tc.want {
				t.Fatalf("IsComplete() = %t, want %t", got, tc.want)
			}
		})
	}
}

func TestCompletionLabel(t *testing.T) {
	t.Parallel()

	list := List{}
	if got := list.CompletionLabel(); got != "0 / 0" {
		t.Fatalf("CompletionLabel() = %q, want %q", got, "0 / 0")
	}
	list.Todos = []Todo{{ID: 1}, {ID: 2, Completed: true}, {ID: 3}}
	if got := list.CompletionLabel(); got != "2 / 3" {
		t.Fatalf("CompletionLabel() = %q, want %q", got, "2 / 3")
	}
}

func TestTodosInDisplayOrderIsStableAndNonMutating(t *testing.T) {
	t.Parallel()

	todos := []Todo{{ID: 1, Completed: true}, {ID: 2}, {ID: 3}}
	ordered := TodosInDisplayOrder(todos)

	if got := todoIDs(ordered); !reflect.DeepEqual(got, []int{2, 3, 1}) {
		t.Fatalf("display order = %v, want [2 3 1]", got)
	}
	if got := todoIDs(todos); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("stored order = %v, want [1 2 3]", got)
	}
}

func TestListsInDisplayOrder(t *testing.T) {
	t.Parallel()

	lists := []List{
		{ID: 1, Todos: []Todo{{ID: 1, Completed: true}}},
		{ID: 2},
		{ID: 3, Todos: []Todo{{ID: 1, Completed: true}}},
		{ID: 4, Todos: []Todo{{ID: 1}}},
	}
	got := listIDs(ListsInDisplayOrder(lists))
	if !reflect.DeepEqual(got, []int{2, 4, 1, 3}) {
		t.Fatalf("display order = %v, want [2 4 1 3]", got)
	}
	if stored := listIDs(lists); !reflect.DeepEqual(stored, []int{1, 2, 3, 4}) {
		t.Fatalf("stored order = %v, want [1 2 3 4]", stored)
	}
}

func TestDisplayOrderEmpty(t *testing.T) {
	t.Parallel()

	if got := DisplayOrder[int](nil, func(int) bool { return true }); len(got) != 0 {
		t.Fatalf("DisplayOrder(nil) = %v, want empty", got)
	}
}

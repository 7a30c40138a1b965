package domain

import "fmt"

// Todo is one named item in a list.
type Todo struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// List is a named, ordered collection of todos.
type List struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Todos []Todo `json:"todos"`
}

// IsComplete reports whether the list has todos and all of them are completed.
func (l List) IsComplete() bool {
	if len(l.Todos) == 0 {
		return false
	}
	for _, todo := range l.Todos {
		if !todo.Completed {
			return false
		}
	}
	return true
}

// IncompleteCount returns the number of todos not yet completed.
func (l List) IncompleteCount() int {
	count := 0
	for _, todo := range l.Todos {
		if !todo.Completed {
			count++
		}
	}
	return count
}

// CompletionLabel formats "<incomplete> / <total>".
func (l List) CompletionLabel() string {
	return fmt.Sprintf("%d / %d", l.IncompleteCount(), len(l.Todos))
}

// Store is the list collection owned by one session. Lists keep insertion order.
type Store struct {
	Lists []List `json:"lists"`
}

// NextID allocates max(ids)+1, or 1 for an empty collection.
func NextID(ids []int) int {
	highest := 0
	for _, id := range ids {
		if id > highest {
			highest = id
		}
	}
	return highest + 1
}

func (s *Store) listIndex(id int) int {
	for i := range s.Lists {
		if s.Lists[i].ID == id {
			return i
		}
	}
	return -1
}

// FindList returns the list with the given id.
func (s *Store) FindList(id int) (List, bool) {
	idx := s.listIndex(id)
	if idx < 0 {
		return List{}, false
	}
	return s.Lists[idx], true
}

// CreateList validates name and appends a new empty list.
func (s *Store) CreateList(name string) (List, error) {
	name = NormalizeName(name)
	if verr := ListNameError(s.Lists, name, 0); verr != nil {
		return List{}, verr
	}
	ids := make([]int, 0, len(s.Lists))
	for _, list := range s.Lists {
		ids = append(ids, list.ID)
	}
	list := List{ID: NextID(ids), Name: name, Todos: []Todo{}}
	s.Lists = append(s.Lists, list)
	return list, nil
}

// RenameList validates name and assigns it to the list.
func (s *Store) RenameList(id int, name string) error {
	idx := s.listIndex(id)
	if idx < 0 {
		return ErrListNotFound
	}
	name = NormalizeName(name)
	if verr := ListNameError(s.Lists, name, id); verr != nil {
		return verr
	}
	s.Lists[idx].Name = name
	return nil
}

// DeleteList removes the list; unknown ids are ignored.
func (s *Store) DeleteList(id int) {
	idx := s.listIndex(id)
	if idx < 0 {
		return
	}
	s.Lists = append(s.Lists[:idx:idx], s.Lists[idx+1:]...)
}

// ClearAll drops every list in the session.
func (s *Store) ClearAll() {
	s.Lists = []List{}
}

// AddTodo validates name and appends an incomplete todo to the list.
func (s *Store) AddTodo(listID int, name string) (Todo, error) {
	idx := s.listIndex(listID)
	if idx < 0 {
		return Todo{}, ErrListNotFound
	}
	name = NormalizeName(name)
	if verr := TodoNameError(name); verr != nil {
		return Todo{}, verr
	}
	list := &s.Lists[idx]
	ids := make([]int, 0, len(list.Todos))
	for _, todo := range list.Todos {
		ids = append(ids, todo.ID)
	}
	todo := Todo{ID: NextID(ids), Name: name}
	list.Todos = append(list.Todos, todo)
	return todo, nil
}

// DeleteTodo removes the todo; unknown ids are ignored.
func (s *Store) DeleteTodo(listID, todoID int) {
	idx := s.listIndex(listID)
	if idx < 0 {
		return
	}
	list := &s.Lists[idx]
	for i := range list.Todos {
		if list.Todos[i].ID == todoID {
			list.Todos = append(list.Todos[:i:i], list.Todos[i+1:]...)
			return
		}
	}
}

// SetTodoCompleted sets the completion flag; unknown ids are ignored.
func (s *Store) SetTodoCompleted(listID, todoID int, completed bool) {
	idx := s.listIndex(listID)
	if idx < 0 {
		return
	}
	list := &s.Lists[idx]
	for i := range list.Todos {
		if list.Todos[i].ID == todoID {
			list.Todos[i].Completed = completed
			return
		}
	}
}

// CompleteAll marks every todo in the list completed.
func (s *Store) CompleteAll(listID int) {
	idx := s.listIndex(listID)
	if idx < 0 {
		return
	}
	list := &s.Lists[idx]
	for i := range list.Todos {
		list.Todos[i].Completed = true
	}
}

// Clone returns a deep copy so a snapshot can be mutated without aliasing.
func (s Store) Clone() Store {
	out := Store{Lists: make([]List, len(s.Lists))}
	for i, list := range s.Lists {
		todos := make([]Todo, len(list.Todos))
		copy(todos, list.Todos)
		list.Todos = todos
		out.Lists[i] = list
	}
	return out
}

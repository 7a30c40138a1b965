package domain

// DisplayOrder returns items with incomplete entries first and complete entries
// last, each group keeping its original relative order. The input is not
// modified.
func DisplayOrder[T any](items []T, complete func(T) bool) []T {
	out := make([]T, 0, len(items))
	var done []T
	for _, item := range items {
		if complete != nil && complete(item) {
			done = append(done, item)
			continue
		}
		out = append(out, item)
	}
	return append(out, done...)
}

// ListsInDisplayOrder orders lists by completion for rendering.
func ListsInDisplayOrder(lists []List) []List {
	return DisplayOrder(lists, List.IsComplete)
}

// TodosInDisplayOrder orders todos by completion for rendering.
func TodosInDisplayOrder(todos []Todo) []Todo {
	return DisplayOrder(todos, func(t Todo) bool { return t.Completed })
}

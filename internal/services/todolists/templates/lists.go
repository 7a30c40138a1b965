package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/louisbranch/todolists/internal/services/todolists/routepath"
)

// FormState holds a submitted value and its validation message.
type FormState struct {
	Value string
	Error string
}

// ListSummary is one row of the lists index.
type ListSummary struct {
	ID       int
	Name     string
	Counter  string
	Complete bool
}

// TodoItem is one row of a list's todos.
type TodoItem struct {
	ID        int
	Name      string
	Completed bool
}

// ListDetail is a list with its todos in display order.
type ListDetail struct {
	ListSummary
	Todos []TodoItem
}

// ListsIndex renders every list with its completion counter.
func ListsIndex(lists []ListSummary, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &htmlWriter{w: out}
		w.raw("<h2>")
		w.text(T(loc, "lists.index.title"))
		w.raw("</h2>")
		if len(lists) == 0 {
			w.raw("<p class=\"empty\">")
			w.text(T(loc, "lists.index.empty"))
			w.raw("</p>")
		} else {
			w.raw("<ul id=\"lists\">")
			for _, list := range lists {
				w.raw("<li")
				if list.Complete {
					w.attr("class", "complete")
				}
				w.attr("data-list-id", strconv.Itoa(list.ID))
				w.raw("><a")
				w.href(routepath.List(list.ID))
				w.raw("><h2>")
				w.text(list.Name)
				w.raw("</h2><p class=\"counter\">")
				w.text(list.Counter)
				w.raw("</p></a></li>")
			}
			w.raw("</ul>")
		}
		w.raw("<p><a")
		w.href(routepath.NewList)
		w.raw(">")
		w.text(T(loc, "core.nav.new_list"))
		w.raw("</a></p>")
		return w.err
	})
}

// NewListForm renders the create-list form.
func NewListForm(form FormState, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &htmlWriter{w: out}
		w.raw("<h2>")
		w.text(T(loc, "lists.new.title"))
		w.raw("</h2><form method=\"post\"")
		w.attr("action", routepath.Lists)
		w.raw(">")
		writeFormError(w, form.Error)
		w.raw("<label for=\"list_name\">")
		w.text(T(loc, "lists.new.label"))
		w.raw("</label><input id=\"list_name\" name=\"list_name\" type=\"text\" maxlength=\"100\" autofocus")
		w.attr("value", form.Value)
		w.raw("><button type=\"submit\">")
		w.text(T(loc, "lists.form.save"))
		w.raw("</button> <a")
		w.href(routepath.Lists)
		w.raw(">")
		w.text(T(loc, "lists.form.cancel"))
		w.raw("</a></form>")
		return w.err
	})
}

// EditListForm renders the rename form and the delete-list action.
func EditListForm(list ListSummary, form FormState, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &htmlWriter{w: out}
		w.raw("<h2>")
		w.text(T(loc, "lists.edit.title", list.Name))
		w.raw("</h2><form method=\"post\"")
		w.attr("action", routepath.List(list.ID))
		w.raw(">")
		writeFormError(w, form.Error)
		w.raw("<label for=\"list_name\">")
		w.text(T(loc, "lists.edit.label"))
		w.raw("</label><input id=\"list_name\" name=\"list_name\" type=\"text\" maxlength=\"100\" autofocus")
		w.attr("value", form.Value)
		w.raw("><button type=\"submit\">")
		w.text(T(loc, "lists.form.save"))
		w.raw("</button> <a")
		w.href(routepath.List(list.ID))
		w.raw(">")
		w.text(T(loc, "lists.form.cancel"))
		w.raw("</a></form><form method=\"post\" class=\"delete\"")
		w.attr("action", routepath.ListDestroy(list.ID))
		w.raw("><button type=\"submit\" class=\"delete\">")
		w.text(T(loc, "lists.edit.delete"))
		w.raw("</button></form>")
		return w.err
	})
}

// ListPage renders one list's todos and the add-todo form.
func ListPage(list ListDetail, form FormState, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		w := &htmlWriter{w: out}
		w.raw("<section class=\"list-header")
		if list.Complete {
			w.raw(" complete")
		}
		w.raw("\"><h2>")
		w.text(list.Name)
		w.raw("</h2><p class=\"counter\">")
		w.text(list.Counter)
		w.raw("</p><a")
		w.href(routepath.ListEdit(list.ID))
		w.raw(">")
		w.text(T(loc, "lists.show.edit"))
		w.raw("</a><form method=\"post\" class=\"inline\"")
		w.attr("action", routepath.ListCompleteAll(list.ID))
		w.raw("><button type=\"submit\">")
		w.text(T(loc, "lists.show.complete_all"))
		w.raw("</button></form></section>")

		if len(list.Todos) == 0 {
			w.raw("<p class=\"empty\">")
			w.text(T(loc, "lists.show.empty"))
			w.raw("</p>")
		} else {
			w.raw("<ul id=\"todos\">")
			for _, todo := range list.Todos {
				writeTodo(w, list.ID, todo, loc)
			}
			w.raw("</ul>")
		}

		w.raw("<form method=\"post\"")
		w.attr("action", routepath.Todos(list.ID))
		w.raw(">")
		writeFormError(w, form.Error)
		w.raw("<label for=\"todo\">")
		w.text(T(loc, "todos.form.label"))
		w.raw("</label><input id=\"todo\" name=\"todo\" type=\"text\" maxlength=\"100\"")
		w.attr("value", form.Value)
		w.raw("><button type=\"submit\">")
		w.text(T(loc, "todos.form.add"))
		w.raw("</button></form>")
		return w.err
	})
}

func writeTodo(w *htmlWriter, listID int, todo TodoItem, loc Localizer) {
	w.raw("<li")
	if todo.Completed {
		w.attr("class", "complete")
	}
	w.attr("data-todo-id", strconv.Itoa(todo.ID))
	w.raw("><form method=\"post\" class=\"inline toggle\"")
	w.attr("action", routepath.Todo(listID, todo.ID))
	w.raw("><input type=\"hidden\" name=\"completed\"")
	w.attr("value", strconv.FormatBool(!todo.Completed))
	w.raw("><button type=\"submit\">")
	if todo.Completed {
		w.text(T(loc, "todos.toggle.reopen"))
	} else {
		w.text(T(loc, "todos.toggle.complete"))
	}
	w.raw("</button></form><h3>")
	w.text(todo.Name)
	w.raw("</h3><form method=\"post\" class=\"inline delete\"")
	w.attr("action", routepath.TodoDestroy(listID, todo.ID))
	w.raw("><button type=\"submit\" class=\"delete\">")
	w.text(T(loc, "todos.delete"))
	w.raw("</button></form></li>")
}

func writeFormError(w *htmlWriter, message string) {
	if message == "" {
		return
	}
	w.raw("<p class=\"error\" role=\"alert\">")
	w.text(message)
	w.raw("</p>")
}

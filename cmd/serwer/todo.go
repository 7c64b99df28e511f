package main

import (
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/searchktools/serwer/core"
	"github.com/searchktools/serwer/core/codec"
	"github.com/searchktools/serwer/core/http"
)

type task struct {
	ID          uint64 `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type message struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// todoList is the demo application state shared by every worker.
type todoList struct {
	mu     sync.RWMutex
	tasks  []task
	nextID atomic.Uint64
}

func newTodoList() *todoList {
	return &todoList{}
}

func (l *todoList) register(e *core.Engine) {
	e.GET("/tasks", l.list)
	e.GET("/task/<id>", l.get)
	e.POST("/task", l.add)
	e.PATCH("/task/<id>", l.complete)
	e.DELETE("/task/<id>", l.remove)
}

func reply(res *http.Response, status http.StatusCode, v any) {
	if err := res.Encode(codec.JSON, v); err != nil {
		res.SetStatus(http.StatusInternalServerError)
		return
	}
	res.SetStatus(status)
}

func replyError(res *http.Response, status http.StatusCode, msg string) {
	reply(res, status, message{Status: "error", Message: msg})
}

func replySuccess(res *http.Response, status http.StatusCode, msg string) {
	reply(res, status, message{Status: "success", Message: msg})
}

// decode reads the body with the codec named by Content-Type, JSON when
// the header is absent.
func decode(req *http.Request, res *http.Response, v any, missing string) bool {
	c := codec.JSON
	if ct, ok := req.Header(http.HeaderContentType); ok {
		var err error
		if c, err = codec.ForContentType(ct); err != nil {
			replyError(res, http.StatusUnsupportedMediaType, "Unsupported content type "+ct)
			return false
		}
	}
	if err := req.Decode(c, v); err != nil {
		replyError(res, http.StatusBadRequest, missing)
		return false
	}
	return true
}

func taskID(req *http.Request) (uint64, bool) {
	raw, _ := req.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	return id, err == nil
}

func (l *todoList) indexOf(id uint64) int {
	return slices.IndexFunc(l.tasks, func(t task) bool { return t.ID == id })
}

func (l *todoList) list(_ *http.Request, res *http.Response) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	reply(res, http.StatusOK, append([]task{}, l.tasks...))
}

func (l *todoList) get(req *http.Request, res *http.Response) {
	id, valid := taskID(req)
	l.mu.RLock()
	defer l.mu.RUnlock()

	i := l.indexOf(id)
	if !valid || i < 0 {
		replyError(res, http.StatusNotFound, "Task not found")
		return
	}
	reply(res, http.StatusOK, l.tasks[i])
}

func (l *todoList) add(req *http.Request, res *http.Response) {
	var in struct {
		Description *string `json:"description"`
	}
	const missing = "Task description is required"
	if !decode(req, res, &in, missing) {
		return
	}
	if in.Description == nil {
		replyError(res, http.StatusBadRequest, missing)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	t := task{ID: l.nextID.Add(1), Description: *in.Description}
	l.tasks = append(l.tasks, t)
	res.SetHeader("Location", "/task/"+strconv.FormatUint(t.ID, 10))
	replySuccess(res, http.StatusCreated, "Task added successfully")
}

func (l *todoList) complete(req *http.Request, res *http.Response) {
	var in struct {
		Completed *bool `json:"completed"`
	}
	const missing = "Completed field is required"
	if !decode(req, res, &in, missing) {
		return
	}
	if in.Completed == nil {
		replyError(res, http.StatusBadRequest, missing)
		return
	}

	id, valid := taskID(req)
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if !valid || i < 0 {
		replyError(res, http.StatusNotFound, "Task not found")
		return
	}
	l.tasks[i].Completed = *in.Completed
	replySuccess(res, http.StatusAccepted, "Task updated successfully")
}

func (l *todoList) remove(req *http.Request, res *http.Response) {
	id, valid := taskID(req)
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if !valid || i < 0 {
		replyError(res, http.StatusNotFound, "Task not found")
		return
	}
	l.tasks = slices.Delete(l.tasks, i, i+1)
	replySuccess(res, http.StatusAccepted, "Task deleted successfully")
}

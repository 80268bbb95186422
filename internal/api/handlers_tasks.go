package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stitbu/satupintu/internal/model"
)

func (h *APIHandler) ListTasksHandler(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.data.Tasks(r.Context())
	if err != nil {
		log.Printf("Error listing tasks: %v", err)
		http.Error(w, "Failed to list tasks", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *APIHandler) CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	var task model.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if task.Title == "" {
		http.Error(w, "Task title is required", http.StatusBadRequest)
		return
	}
	if task.TargetDivision != "" && !model.ValidDivision(task.TargetDivision) {
		http.Error(w, "Unknown target division", http.StatusBadRequest)
		return
	}
	task.CreatorID = user.ID
	if task.OriginDivision == "" {
		task.OriginDivision = user.Division
	}

	created, err := h.data.AddTask(r.Context(), task)
	if err != nil {
		log.Printf("Error creating task for user %s: %v", user.ID, err)
		http.Error(w, "Failed to create task", http.StatusInternalServerError)
		return
	}

	if err := h.data.LogActivity("task.created", fmt.Sprintf("%s created %q", user.DisplayName, created.Title)); err != nil {
		log.Printf("Failed to record activity: %v", err)
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *APIHandler) UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	taskID := chi.URLParam(r, "taskID")

	var update model.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if !h.canManage(r, user, taskID) {
		http.Error(w, "Not allowed to modify this task", http.StatusForbidden)
		return
	}

	if err := h.data.UpdateTask(r.Context(), taskID, update); err != nil {
		log.Printf("Error updating task %s: %v", taskID, err)
		http.Error(w, "Failed to update task", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	taskID := chi.URLParam(r, "taskID")

	if !h.canManage(r, user, taskID) {
		http.Error(w, "Not allowed to delete this task", http.StatusForbidden)
		return
	}

	if err := h.data.DeleteTask(r.Context(), taskID); err != nil {
		log.Printf("Error deleting task %s: %v", taskID, err)
		http.Error(w, "Failed to delete task", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// canManage resolves the task's division and applies the permission policy.
// A task that cannot be found is manageable: updates and deletes on absent
// ids are defined as no-ops further down.
func (h *APIHandler) canManage(r *http.Request, user *model.User, taskID string) bool {
	tasks, err := h.data.Tasks(r.Context())
	if err != nil {
		return user.Role == model.RoleAdmin
	}
	for _, task := range tasks {
		if task.ID == taskID {
			return model.CanManageTask(user.Role, user.Division, task.TargetDivision)
		}
	}
	return true
}

// UploadAttachmentHandler stores a file in the remote bucket and returns its
// public URL. With the remote unavailable the caller gets a 502 and must
// leave the task's attachment untouched.
func (h *APIHandler) UploadAttachmentHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "A file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}

	url, err := h.data.UploadAttachment(r.Context(), header.Filename, content, header.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("Attachment upload failed: %v", err)
		http.Error(w, "Upload failed", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

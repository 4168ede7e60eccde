package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "dailytrack/internal/errors"
	"dailytrack/internal/models"
	"dailytrack/internal/services"
	"dailytrack/internal/validator"
)

// --- mock task service ---

type mockTaskService struct {
	createTaskFn     func(date time.Time, category models.TaskCategory, title, description string) (*models.DailyTask, error)
	getTasksByDateFn func(date time.Time) ([]models.DailyTask, error)
	updateTaskFn     func(taskID uint, fields services.TaskUpdateFields) (*models.DailyTask, error)
	deleteTaskFn     func(taskID uint) error
	toggleTaskFn     func(taskID uint) (*models.DailyTask, error)
	suggestTasksFn   func(today time.Time) ([]models.DailyTask, error)
}

func (m *mockTaskService) CreateTask(date time.Time, category models.TaskCategory, title, description string) (*models.DailyTask, error) {
	if m.createTaskFn != nil {
		return m.createTaskFn(date, category, title, description)
	}
	return &models.DailyTask{}, nil
}

func (m *mockTaskService) GetTasksByDate(date time.Time) ([]models.DailyTask, error) {
	if m.getTasksByDateFn != nil {
		return m.getTasksByDateFn(date)
	}
	return []models.DailyTask{}, nil
}

func (m *mockTaskService) UpdateTask(taskID uint, fields services.TaskUpdateFields) (*models.DailyTask, error) {
	if m.updateTaskFn != nil {
		return m.updateTaskFn(taskID, fields)
	}
	return &models.DailyTask{}, nil
}

func (m *mockTaskService) DeleteTask(taskID uint) error {
	if m.deleteTaskFn != nil {
		return m.deleteTaskFn(taskID)
	}
	return nil
}

func (m *mockTaskService) ToggleTask(taskID uint) (*models.DailyTask, error) {
	if m.toggleTaskFn != nil {
		return m.toggleTaskFn(taskID)
	}
	return &models.DailyTask{}, nil
}

func (m *mockTaskService) SuggestTasks(today time.Time) ([]models.DailyTask, error) {
	if m.suggestTasksFn != nil {
		return m.suggestTasksFn(today)
	}
	return []models.DailyTask{}, nil
}

// verify interface compliance
var _ services.TaskServicer = (*mockTaskService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupTaskRouter(handler *TaskHandler) *gin.Engine {
	r := gin.New()
	r.POST("/tasks", handler.CreateTask)
	r.GET("/tasks", handler.GetTasks)
	r.PUT("/tasks/:id", handler.UpdateTask)
	r.DELETE("/tasks/:id", handler.DeleteTask)
	r.POST("/tasks/:id/toggle", handler.ToggleTask)
	r.POST("/tasks/suggest", handler.SuggestTasks)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestTaskHandler_CreateTask(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		taskSvc := &mockTaskService{
			createTaskFn: func(date time.Time, category models.TaskCategory, title, description string) (*models.DailyTask, error) {
				return &models.DailyTask{
					Base:     models.Base{ID: 1},
					Date:     date,
					Category: category,
					Title:    title,
				}, nil
			},
		}
		r := setupTaskRouter(NewTaskHandler(taskSvc))

		rec := doRequest(r, http.MethodPost, "/tasks", `{"date":"2024-07-01","category":"ACADEMIC","title":"Read chapter 4"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		result := parseJSON(t, rec)
		task, ok := result["task"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected task object, got: %v", result)
		}
		if task["title"] != "Read chapter 4" {
			t.Errorf("expected title in response, got %v", task["title"])
		}
	})

	t.Run("rejects bad date format", func(t *testing.T) {
		r := setupTaskRouter(NewTaskHandler(&mockTaskService{}))

		rec := doRequest(r, http.MethodPost, "/tasks", `{"date":"01/07/2024","category":"ACADEMIC","title":"x"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		r := setupTaskRouter(NewTaskHandler(&mockTaskService{}))

		rec := doRequest(r, http.MethodPost, "/tasks", `{"date":"2024-07-01","category":"CHORES","title":"x"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestTaskHandler_ToggleTask(t *testing.T) {
	t.Run("returns toggled task", func(t *testing.T) {
		taskSvc := &mockTaskService{
			toggleTaskFn: func(taskID uint) (*models.DailyTask, error) {
				return &models.DailyTask{
					Base:        models.Base{ID: taskID},
					IsCompleted: true,
				}, nil
			},
		}
		r := setupTaskRouter(NewTaskHandler(taskSvc))

		rec := doRequest(r, http.MethodPost, "/tasks/4/toggle", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		result := parseJSON(t, rec)
		task, ok := result["task"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected task object, got: %v", result)
		}
		if task["is_completed"] != true {
			t.Errorf("expected is_completed true, got %v", task["is_completed"])
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		taskSvc := &mockTaskService{
			toggleTaskFn: func(taskID uint) (*models.DailyTask, error) {
				return nil, apperrors.ErrTaskNotFound
			},
		}
		r := setupTaskRouter(NewTaskHandler(taskSvc))

		rec := doRequest(r, http.MethodPost, "/tasks/4/toggle", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TASK_NOT_FOUND")
	})

	t.Run("rejects non-numeric id", func(t *testing.T) {
		r := setupTaskRouter(NewTaskHandler(&mockTaskService{}))

		rec := doRequest(r, http.MethodPost, "/tasks/abc/toggle", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTaskHandler_GetTasks(t *testing.T) {
	t.Run("passes explicit date to service", func(t *testing.T) {
		var gotDate time.Time
		taskSvc := &mockTaskService{
			getTasksByDateFn: func(date time.Time) ([]models.DailyTask, error) {
				gotDate = date
				return []models.DailyTask{}, nil
			},
		}
		r := setupTaskRouter(NewTaskHandler(taskSvc))

		rec := doRequest(r, http.MethodGet, "/tasks?date=2024-07-01", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		want := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
		if !gotDate.Equal(want) {
			t.Errorf("expected date %v passed to service, got %v", want, gotDate)
		}
	})
}

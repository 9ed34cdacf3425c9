// Package server exposes the planner over HTTP. Handlers stay thin and
// defer to the service layer.
package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"time-planner/internal/model"
	"time-planner/internal/service"
)

// Server bundles the planner services behind one HTTP transport. The
// current civil date is injected as a function so handlers never read the
// server-local wall clock.
type Server struct {
	agenda     *service.AgendaService
	tasks      *service.TaskService
	habits     *service.HabitService
	blocks     *service.BlockService
	promotions *service.PromotionService
	reminders  *service.ReminderService
	points     *service.PointsService
	categories *service.CategoryService
	today      func() string
}

func New(
	agenda *service.AgendaService,
	tasks *service.TaskService,
	habits *service.HabitService,
	blocks *service.BlockService,
	promotions *service.PromotionService,
	reminders *service.ReminderService,
	points *service.PointsService,
	categories *service.CategoryService,
	today func() string,
) *Server {
	return &Server{
		agenda:     agenda,
		tasks:      tasks,
		habits:     habits,
		blocks:     blocks,
		promotions: promotions,
		reminders:  reminders,
		points:     points,
		categories: categories,
		today:      today,
	}
}

// Router builds the chi router with middleware and all planner routes.
func (s *Server) Router(corsOrigin string) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", s.CreateTask)
		r.Post("/agenda", s.Agenda)
		r.Post("/promote-reminders", s.PromoteReminders)
		r.Post("/blocks", s.LayoutBlocks)
		r.Get("/points", s.PointsToday)
		r.Get("/points/graph", s.PointsGraph)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetTask)
			r.Put("/", s.UpdateTask)
			r.Delete("/", s.DeleteTask)
			r.Delete("/purge", s.PurgeTask)
			r.Put("/completed", s.SetCompleted)
			r.Put("/not-completed", s.SetNotCompleted)
			r.Put("/five", s.SetFive)
			r.Put("/reassign", s.SetReassign)
			r.Put("/notes", s.SetTaskNotes)
		})
	})

	r.Route("/habits", func(r chi.Router) {
		r.Post("/", s.UpsertHabit)
		r.Post("/notes", s.UpsertHabitNotes)
		r.Get("/", s.ListHabits)
		r.Get("/graph", s.HabitGraph)
		r.Post("/delete-by-task", s.DeleteHabitsByTask)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetHabit)
			r.Put("/", s.UpdateHabit)
			r.Delete("/", s.DeleteHabit)
		})
	})

	r.Route("/reminders", func(r chi.Router) {
		r.Post("/", s.CreateReminder)
		r.Get("/", s.ListReminders)
		r.Get("/range/{startDate}/{endDate}", s.ListRemindersRange)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetReminder)
			r.Put("/", s.UpdateReminder)
			r.Delete("/", s.DeleteReminder)
			r.Put("/toggle", s.ToggleReminder)
		})
	})

	r.Route("/category", func(r chi.Router) {
		r.Post("/", s.CreateCategory)
		r.Get("/", s.ListCategories)
		r.Get("/completed", s.CategoriesCompleted)
		r.Get("/open", s.CategoriesOpen)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetCategory)
			r.Put("/", s.UpdateCategory)
			r.Delete("/", s.DeleteCategory)
		})
	})

	r.Get("/health", s.Health)

	return r
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// dateRange reads fromDate/toDate query parameters, falling back to the
// last defaultDays days (or an explicit days parameter) ending today.
func (s *Server) dateRange(r *http.Request, defaultDays int) (string, string) {
	from := r.URL.Query().Get("fromDate")
	to := r.URL.Query().Get("toDate")
	if from != "" && to != "" {
		return from, to
	}

	days := defaultDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			days = n
		}
	}

	today := s.today()
	end, err := time.Parse(model.DateLayout, today)
	if err != nil {
		return today, today
	}
	return end.AddDate(0, 0, -days).Format(model.DateLayout), today
}

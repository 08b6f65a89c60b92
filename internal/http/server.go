package httpapi

import (
	"context"
	"net/http"

	"belakoo-backend-go/internal/config"
	"belakoo-backend-go/internal/ingest"
	"belakoo-backend-go/internal/logger"
	"belakoo-backend-go/internal/notify"
	"belakoo-backend-go/internal/services"
	"belakoo-backend-go/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Server struct {
	Store   store.Store
	Config  config.Config
	Tokens  services.TokenService
	Users   *services.UserService
	Content *services.ContentService
	Lessons *services.LessonService
	Ingest  *services.IngestService
	Hub     *services.ActivityHub
	Log     *logger.Logger
}

type Options struct {
	Notifier notify.Notifier
	Sheets   services.SheetsServiceFunc
	Log      *logger.Logger
}

func NewServer(st store.Store, cfg config.Config, hub *services.ActivityHub, opts Options) *Server {
	log := opts.Log
	if log == nil {
		log = logger.NewNop()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.LogNotifier{Log: log}
	}
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTLSeconds, cfg.RefreshTTLSeconds)
	importer := ingest.NewImporter(st, log.With("component", "ingest"))
	return &Server{
		Store:   st,
		Config:  cfg,
		Tokens:  tokens,
		Users:   services.NewUserService(st, tokens, log),
		Content: services.NewContentService(st, log),
		Lessons: services.NewLessonService(st, notifier, hub, log),
		Ingest: services.NewIngestService(importer, hub, log, services.IngestConfig{
			ContentDir:    cfg.ContentDir,
			DefaultCampus: cfg.DefaultCampusCode,
			SheetsService: opts.Sheets,
		}),
		Hub: hub,
		Log: log,
	}
}

func (s *Server) Router(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger(s.Log))
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/login", s.Login)
		api.Post("/auth/refresh", s.Refresh)

		api.Group(func(authed chi.Router) {
			authed.Use(WithAuth(s.Tokens))

			authed.Get("/me", s.Me)
			authed.Put("/me/push-token", s.UpdatePushToken)

			authed.Get("/campuses", s.ListCampuses)
			authed.Get("/campuses/{campusId}", s.CampusDetail)
			authed.Get("/grades/{gradeId}", s.GradeDetail)
			authed.Get("/subjects/{subjectId}", s.SubjectDetail)
			authed.Get("/proficiencies/{proficiencyId}/lessons", s.ProficiencyLessons)
			authed.Get("/lessons/{lessonRef}", s.LessonDetail)
			authed.Post("/lessons/{lessonRef}/mark-done", s.MarkLessonDone)
			authed.Post("/lessons/{lessonRef}/mark-not-done", s.MarkLessonNotDone)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(WithAuth(s.Tokens))
			admin.Use(RequireRole("ADMIN"))
			admin.Get("/system", s.SystemStatus)

			admin.Route("/volunteers", func(vols chi.Router) {
				vols.Get("/", s.ListVolunteers)
				vols.Post("/", s.CreateVolunteer)
				vols.Delete("/{userId}", s.DeleteVolunteer)
			})
			admin.Route("/campuses", func(campuses chi.Router) {
				campuses.Post("/", s.CreateCampus)
				campuses.Put("/{campusId}", s.UpdateCampus)
				campuses.Delete("/{campusId}", s.DeleteCampus)
			})
			admin.Route("/grades", func(grades chi.Router) {
				grades.Post("/", s.CreateGrade)
				grades.Put("/{gradeId}", s.UpdateGrade)
				grades.Delete("/{gradeId}", s.DeleteGrade)
			})
			admin.Route("/subjects", func(subjects chi.Router) {
				subjects.Post("/", s.CreateSubject)
				subjects.Put("/{subjectId}", s.UpdateSubject)
				subjects.Delete("/{subjectId}", s.DeleteSubject)
			})
			admin.Route("/proficiencies", func(profs chi.Router) {
				profs.Post("/", s.CreateProficiency)
				profs.Put("/{proficiencyId}", s.UpdateProficiency)
				profs.Delete("/{proficiencyId}", s.DeleteProficiency)
			})
			admin.Route("/lessons", func(lessons chi.Router) {
				lessons.Post("/", s.CreateLesson)
				lessons.Delete("/content", s.DeleteAllLessons)
				lessons.Put("/{lessonRef}", s.UpdateLesson)
				lessons.Delete("/{lessonRef}", s.DeleteLesson)
				lessons.Post("/{lessonRef}/verify", s.VerifyLesson)
			})
			admin.Route("/ingest", func(ing chi.Router) {
				ing.Post("/csv", s.IngestCSV)
				ing.Post("/sheets", s.IngestSheets)
				ing.Get("/sheets", s.ListSheets)
			})
		})
	})

	r.Get("/ws/activity", s.ActivitySocket)
	return r
}

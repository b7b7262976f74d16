package webhttp

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"

	"github.com/yourname/rmbg_lite/internal/config"
	"github.com/yourname/rmbg_lite/internal/matting"
	"github.com/yourname/rmbg_lite/internal/usecase/rmbgsvc"
	"github.com/yourname/rmbg_lite/pkg/rmbgproto"
)

//go:embed templates/*.html
var templates embed.FS

const indexTemplate = "index.html"

type Server struct {
	Images rmbgsvc.Service
	Cfg    *config.Config

	remover matting.Remover
	log     logr.Logger
	tmpl    *template.Template
}

type options struct {
	remover matting.Remover
	logger  logr.Logger
}

type Option func(*options)

// WithRemover подменяет бэкенд, выбранный по конфигурации.
func WithRemover(r matting.Remover) Option {
	return func(o *options) {
		o.remover = r
	}
}

func WithLogger(l logr.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// NewServer конструктор
func NewServer(cfg *config.Config, opts ...Option) (http.Handler, *Server, error) {
	o := options{logger: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	remover := o.remover
	if remover == nil {
		var err error
		if remover, err = matting.New(cfg.Matting); err != nil {
			return nil, nil, err
		}
	}

	tmpl, err := template.ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, nil, err
	}

	srv := &Server{
		Images: rmbgsvc.New(rmbgsvc.Deps{
			Remover:   remover,
			MaxPixels: cfg.MaxPixels,
		}),
		Cfg:     cfg,
		remover: remover,
		log:     o.logger,
		tmpl:    tmpl,
	}

	return srv.routes(), srv, nil
}

// routes регистрирует страницу загрузки и health.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(s.bodyLimit(s.Cfg.MaxUploadBytes))

	r.Get(rmbgproto.UploadPath, s.getIndex)
	r.Post(rmbgproto.UploadPath, s.postUpload)
	r.Get(rmbgproto.HealthPath, s.health)

	return r
}

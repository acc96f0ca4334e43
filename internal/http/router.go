package api

import (
	"hrms/internal/auth"
	h "hrms/internal/http/handlers"
	"hrms/internal/http/middleware"
	"hrms/internal/http/response"
	"hrms/internal/http/validation"
	"hrms/internal/metrics"
	"hrms/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	DB              *sqlx.DB
	Log             *zap.Logger
	Metrics         *metrics.Metrics
	Tokens          *auth.TokenManager
	Employees       *services.EmployeeService
	Departments     *services.DepartmentService
	Users           *services.UserService
	Auth            *services.AuthService
	AllowedOrigins  []string
	LoginRatePerMin int
}

func NewRouter(d Deps) *gin.Engine {
	validation.Setup()
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	// Logger and Metrics sit outside Recovery so panics are logged and counted as 500s.
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log))
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}
	r.Use(
		gin.CustomRecovery(response.Recover(log)),
		middleware.CORS(d.AllowedOrigins),
		middleware.Pagination(),
		response.Envelope(log),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(h.NotFound)

	system := h.SystemHandler{DB: d.DB, Engine: r}
	r.GET("/health", system.Health)
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	authH := h.AuthHandler{Service: d.Auth}
	authGroup := r.Group("/auth")
	authGroup.POST("/register", authH.Register)
	authGroup.POST("/login", middleware.NewRateLimiter(d.LoginRatePerMin).Handler(), authH.Login)

	private := r.Group("/", middleware.RequireAuth(d.Tokens))
	private.GET("/auth/profile", authH.Profile)
	private.GET("/routes", system.Routes)

	// Employees: fixed paths first so they are not captured by /:id.
	emp := h.EmployeeHandler{Service: d.Employees}
	employees := private.Group("/employees")
	employees.GET("", emp.List)
	employees.GET("/find-gender", emp.FindByGender)
	employees.GET("/typed-sql/:empNo", emp.FindByEmpNo)
	employees.GET("/search/:name", emp.SearchByName)
	employees.GET("/roster.pdf", emp.RosterPDF)
	employees.GET("/:id", emp.Get)
	employees.POST("", emp.Create)
	employees.PUT("/transaction/:id", emp.UpdateTransaction)
	employees.PUT("/:id", emp.Update)
	employees.DELETE("/:id", emp.Delete)

	dep := h.DepartmentHandler{Service: d.Departments}
	departments := private.Group("/departments")
	departments.GET("", dep.List)
	departments.GET("/:id", dep.Get)
	departments.POST("", dep.Create)
	departments.PUT("/:id", dep.Update)
	departments.DELETE("/:id", dep.Delete)

	usr := h.UserHandler{Service: d.Users}
	users := private.Group("/users")
	users.GET("", usr.List)
	users.GET("/:id", usr.Get)
	users.POST("", usr.Create)
	users.PUT("/:id", usr.Update)
	users.DELETE("/:id", usr.Delete)

	return r
}

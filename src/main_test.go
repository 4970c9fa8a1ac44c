package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"stowage/src/middlewares"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type TestSuite struct {
	suite.Suite
}

func (s *TestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("rentaldate", rentalDateValidatorFunc)
		v.RegisterValidation("gtdate", gtdate)
	}
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMaintenanceMode() {
	os.Setenv("MAINTENANCE_MODE", "true")
	defer os.Setenv("MAINTENANCE_MODE", "false")

	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	apiv1Group(router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 503, w.Code)
}

func (s *TestSuite) TestUnauthorized() {
	router := setupRouter()
	apiv1 := apiv1Group(router)
	apiv1.Use(middlewares.AuthMiddleware)
	reservationHandlers(apiv1)

	s.Run("no token is rejected", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/reservations", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 401, w.Code)
	})

	s.Run("garbage token is rejected", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/reservations", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 401, w.Code)
	})
}

func (s *TestSuite) TestDateValidators() {
	v := validator.New()
	v.RegisterValidation("rentaldate", rentalDateValidatorFunc)
	v.RegisterValidation("gtdate", gtdate)

	type window struct {
		StartDate string  `validate:"required,rentaldate"`
		EndDate   string  `validate:"required,rentaldate,gtdate=StartDate"`
		Optional  *string `validate:"omitempty,rentaldate"`
	}

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	nextWeek := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	s.Run("valid window passes", func() {
		err := v.Struct(&window{StartDate: tomorrow, EndDate: nextWeek})
		assert.Nil(s.T(), err)
	})

	s.Run("past date is rejected", func() {
		err := v.Struct(&window{StartDate: yesterday, EndDate: nextWeek})
		assert.NotNil(s.T(), err)
	})

	s.Run("end before start is rejected", func() {
		err := v.Struct(&window{StartDate: nextWeek, EndDate: tomorrow})
		assert.NotNil(s.T(), err)
	})

	s.Run("end equal to start is rejected", func() {
		err := v.Struct(&window{StartDate: tomorrow, EndDate: tomorrow})
		assert.NotNil(s.T(), err)
	})

	s.Run("malformed date is rejected", func() {
		err := v.Struct(&window{StartDate: "03-01-2026", EndDate: nextWeek})
		assert.NotNil(s.T(), err)
	})

	s.Run("optional pointer date is validated when present", func() {
		err := v.Struct(&window{StartDate: tomorrow, EndDate: nextWeek, Optional: &yesterday})
		assert.NotNil(s.T(), err)

		err = v.Struct(&window{StartDate: tomorrow, EndDate: nextWeek, Optional: &nextWeek})
		assert.Nil(s.T(), err)
	})
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(TestSuite))
}

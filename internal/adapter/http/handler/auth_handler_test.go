package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/adapter/http/handler"
	"todoapi/internal/adapter/http/routes"
	"todoapi/internal/core/model/response"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"
	"todoapi/internal/core/util"
	"todoapi/pkg/auth"
	"todoapi/pkg/config"
	. "todoapi/pkg/test"
)

type testApp struct {
	Router   *gin.Engine
	UserRepo port.UserRepository
	TodoRepo port.TodoRepository
	Auth     *service.AuthService
}

func newTestApp() *testApp {
	gin.SetMode(gin.TestMode)

	db := InitTestDB()

	cursors := util.NewCursorCodec("handler-test-secret")

	codec, _ := auth.NewTokenCodec(&config.Config{
		JWTSecret:       "handler-test-secret",
		JWTAlgorithm:    "HS256",
		TokenTTLMinutes: 30,
	})

	userRepo := repository.NewUserRepository(db)
	todoRepo := repository.NewTodoRepository(db, cursors)

	authSvc := service.NewAuthService(userRepo, codec)
	userSvc := service.NewUserService(userRepo)
	todoSvc := service.NewTodoService(todoRepo, cursors)

	router := routes.SetupRouterForTests(routes.HandlersConfig{
		AuthHandler: handler.NewAuthHandler(authSvc),
		UserHandler: handler.NewUserHandler(userSvc),
		TodoHandler: handler.NewTodoHandler(todoSvc),
		AuthService: authSvc,
	})

	return &testApp{
		Router:   router,
		UserRepo: userRepo,
		TodoRepo: todoRepo,
		Auth:     authSvc,
	}
}

func (app *testApp) register(body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", "/auth/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	app.Router.ServeHTTP(rr, req)

	return rr
}

func (app *testApp) token(username, password string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	form.Set("grant_type", "password")

	req, _ := http.NewRequest("POST", "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	app.Router.ServeHTTP(rr, req)

	return rr
}

func (app *testApp) accessToken(username, password string) string {
	rr := app.token(username, password)

	var token response.TokenResponse
	body, _ := io.ReadAll(rr.Body)
	json.Unmarshal(body, &token)

	return token.AccessToken
}

const registerBody = `{
	"first_name": "John",
	"last_name": "Doe",
	"username": "johndoe",
	"email": "john@example.com",
	"password": "plaintext-password"
}`

type AuthHandlerSuite struct {
	suite.Suite
	App *testApp
}

func (s *AuthHandlerSuite) SetupTest() {
	s.App = newTestApp()
}

func TestAuthHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) TestRegister() {
	rr := s.App.register(registerBody)

	Expect(rr.Code).To(Equal(http.StatusCreated))

	body, _ := io.ReadAll(rr.Body)

	envelope := struct {
		Data response.UserResponse `json:"data"`
	}{}
	json.Unmarshal(body, &envelope)

	Expect(envelope.Data.Username).To(Equal("johndoe"))
	Expect(envelope.Data.Email).To(Equal("john@example.com"))
	Expect(envelope.Data.ID.String()).To(Not(Equal("00000000-0000-0000-0000-000000000000")))

	// The hash never appears on the wire.
	Expect(string(body)).To(Not(ContainSubstring("password")))
}

func (s *AuthHandlerSuite) TestRegisterValidationError() {
	rr := s.App.register(`{"first_name": "John", "username": "johndoe", "email": "not-an-email", "password": "short"}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	body, _ := io.ReadAll(rr.Body)

	errorResponse := response.ErrorResponse{}
	json.Unmarshal(body, &errorResponse)

	Expect(errorResponse.Error.Code).To(Equal("VALIDATION_ERROR"))
	Expect(len(errorResponse.Error.Errors)).To(BeNumerically(">", 0))
}

func (s *AuthHandlerSuite) TestRegisterDuplicate() {
	first := s.App.register(registerBody)
	Expect(first.Code).To(Equal(http.StatusCreated))

	second := s.App.register(registerBody)

	Expect(second.Code).To(Equal(http.StatusConflict))

	body, _ := io.ReadAll(second.Body)

	errorResponse := response.ErrorResponse{}
	json.Unmarshal(body, &errorResponse)

	Expect(errorResponse.Error.Code).To(Equal("CREATION_FAILED"))
}

func (s *AuthHandlerSuite) TestToken() {
	s.App.register(registerBody)

	rr := s.App.token("johndoe", "plaintext-password")

	Expect(rr.Code).To(Equal(http.StatusOK))

	body, _ := io.ReadAll(rr.Body)

	// The token payload goes out bare, not wrapped in the data envelope.
	var token response.TokenResponse
	json.Unmarshal(body, &token)

	Expect(token.AccessToken).To(Not(BeEmpty()))
	Expect(token.TokenType).To(Equal("bearer"))
}

func (s *AuthHandlerSuite) TestTokenAcceptsEmailAsIdentifier() {
	s.App.register(registerBody)

	rr := s.App.token("john@example.com", "plaintext-password")

	Expect(rr.Code).To(Equal(http.StatusOK))
}

func (s *AuthHandlerSuite) TestTokenBadCredentials() {
	s.App.register(registerBody)

	wrongPassword := s.App.token("johndoe", "wrong")
	unknownUser := s.App.token("nobody", "plaintext-password")

	Expect(wrongPassword.Code).To(Equal(http.StatusUnauthorized))
	Expect(unknownUser.Code).To(Equal(http.StatusUnauthorized))
}

func (s *AuthHandlerSuite) TestTokenRejectsWrongGrantType() {
	s.App.register(registerBody)

	form := url.Values{}
	form.Set("username", "johndoe")
	form.Set("password", "plaintext-password")
	form.Set("grant_type", "client_credentials")

	req, _ := http.NewRequest("POST", "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	s.App.Router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

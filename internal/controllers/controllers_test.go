package controllers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"time"

	"github.com/fsdevblog/smartlink/internal/config"
	"github.com/fsdevblog/smartlink/internal/services/smocks"
	"github.com/fsdevblog/smartlink/internal/tokens"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret"

// baseControllerSuite общая обвязка контроллерных тестов: моки сервисов,
// собранный роутер и хелперы запросов.
type baseControllerSuite struct {
	suite.Suite
	linkMock       *smocks.LinkMock
	redirectMock   *smocks.RedirectMock
	ruleMock       *smocks.RuleMock
	userMock       *smocks.UserMock
	pingMock       *smocks.PingMock
	cacheStatsMock *smocks.CacheStatsMock
	router         *gin.Engine
	config         *config.Config
}

func (s *baseControllerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.linkMock = new(smocks.LinkMock)
	s.redirectMock = new(smocks.RedirectMock)
	s.ruleMock = new(smocks.RuleMock)
	s.userMock = new(smocks.UserMock)
	s.pingMock = new(smocks.PingMock)
	s.cacheStatsMock = new(smocks.CacheStatsMock)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	appConf := config.Config{
		ServerAddress: ":80",
		BaseURL:       &url.URL{Scheme: "http", Host: "sl.test"},
		JWTSecret:     testJWTSecret,
		Logger:        logger,
	}
	s.config = &appConf
	s.router = SetupRouter(RouterParams{
		LinkService:     s.linkMock,
		RedirectService: s.redirectMock,
		RuleService:     s.ruleMock,
		UserService:     s.userMock,
		PingService:     s.pingMock,
		CacheStats:      s.cacheStatsMock,
		AppConf:         &appConf,
		Logger:          logger,
	})
}

type requestFields struct {
	Method string
	URL    string
	Body   io.Reader
	Token  string
}

// makeRequest вспомогательная функция создающая тестовый http запрос.
func (s *baseControllerSuite) makeRequest(fields requestFields) *http.Response {
	request := httptest.NewRequest(fields.Method, fields.URL, fields.Body)
	if fields.Body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if fields.Token != "" {
		request.Header.Set("Authorization", "Bearer "+fields.Token)
	}

	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, request)
	return recorder.Result()
}

// authToken выдает валидный bearer токен для пользователя.
func (s *baseControllerSuite) authToken(userID uint) string {
	token, err := tokens.GenerateUserJWT(userID, time.Hour, []byte(testJWTSecret))
	s.Require().NoError(err)
	return token
}

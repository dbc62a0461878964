package controllers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/fsdevblog/smartlink/internal/models"
	"github.com/fsdevblog/smartlink/internal/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RulesControllerSuite struct {
	baseControllerSuite
}

func (s *RulesControllerSuite) TestCreate() {
	userID := uint(7)

	s.ruleMock.On("Create", userID, services.CreateRuleParams{
		MappingID:      5,
		Kind:           models.RuleKindCountry,
		ConditionValue: "RU",
		TargetURL:      "https://example.com/ru",
		Priority:       10,
		IsActive:       true,
	}).Return(&models.Rule{ID: 1, MappingID: 5, Kind: models.RuleKindCountry}, nil)

	body := `{
		"url_id": 5,
		"rule_type": "country",
		"condition_value": "RU",
		"target_url": "https://example.com/ru",
		"priority": 10
	}`
	res := s.makeRequest(requestFields{
		Method: http.MethodPost,
		URL:    "/api/rules",
		Body:   strings.NewReader(body),
		Token:  s.authToken(userID),
	})
	defer res.Body.Close()

	s.Equal(http.StatusCreated, res.StatusCode)
	s.ruleMock.AssertExpectations(s.T())
}

func (s *RulesControllerSuite) TestCreate_Errors() {
	userID := uint(7)

	s.ruleMock.On("Create", userID, mock.MatchedBy(func(p services.CreateRuleParams) bool {
		return p.Kind == models.RuleKind("planet")
	})).Return(nil, services.ErrInvalidRule)
	s.ruleMock.On("Create", userID, mock.MatchedBy(func(p services.CreateRuleParams) bool {
		return p.MappingID == 99
	})).Return(nil, services.ErrPermissionDenied)

	tests := []struct {
		name       string
		body       string
		token      string
		wantStatus int
	}{
		{
			name:       "no token",
			body:       `{"url_id": 5, "rule_type": "country", "target_url": "https://example.com/x"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing fields",
			body:       `{"url_id": 5}`,
			token:      s.authToken(userID),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown kind",
			body:       `{"url_id": 5, "rule_type": "planet", "target_url": "https://example.com/x"}`,
			token:      s.authToken(userID),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "foreign mapping",
			body:       `{"url_id": 99, "rule_type": "country", "condition_value": "RU", "target_url": "https://example.com/x"}`,
			token:      s.authToken(userID),
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			res := s.makeRequest(requestFields{
				Method: http.MethodPost,
				URL:    "/api/rules",
				Body:   strings.NewReader(tt.body),
				Token:  tt.token,
			})
			defer res.Body.Close()
			s.Equal(tt.wantStatus, res.StatusCode)
		})
	}
}

func (s *RulesControllerSuite) TestList() {
	userID := uint(7)
	s.ruleMock.On("List", userID, uint(5)).Return([]models.Rule{
		{ID: 1, MappingID: 5, Kind: models.RuleKindCountry},
		{ID: 2, MappingID: 5, Kind: models.RuleKindWeight},
	}, nil)

	res := s.makeRequest(requestFields{
		Method: http.MethodGet,
		URL:    "/api/rules/5",
		Token:  s.authToken(userID),
	})
	defer res.Body.Close()
	s.Equal(http.StatusOK, res.StatusCode)

	badRes := s.makeRequest(requestFields{
		Method: http.MethodGet,
		URL:    "/api/rules/notanumber",
		Token:  s.authToken(userID),
	})
	defer badRes.Body.Close()
	s.Equal(http.StatusBadRequest, badRes.StatusCode)
}

func (s *RulesControllerSuite) TestDelete() {
	userID := uint(7)
	s.ruleMock.On("Delete", userID, uint(9)).Return(nil)
	s.ruleMock.On("Delete", userID, uint(404)).Return(services.ErrRecordNotFound)

	tests := []struct {
		name       string
		ruleID     string
		wantStatus int
	}{
		{name: "ok", ruleID: "9", wantStatus: http.StatusNoContent},
		{name: "missing", ruleID: "404", wantStatus: http.StatusNotFound},
		{name: "garbage id", ruleID: "abc", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			res := s.makeRequest(requestFields{
				Method: http.MethodDelete,
				URL:    "/api/rules/" + tt.ruleID,
				Token:  s.authToken(userID),
			})
			defer res.Body.Close()
			s.Equal(tt.wantStatus, res.StatusCode)
		})
	}
}

func TestRulesControllerSuite(t *testing.T) {
	suite.Run(t, new(RulesControllerSuite))
}

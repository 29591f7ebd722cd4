package payment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cdp-clube/cdp-api/internal/user"
	"github.com/cdp-clube/cdp-api/pkg/responses"
)

func athletesStatusFixture(t *testing.T) (*PaymentController, *trackerFixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fx := newTrackerFixture(t)
	for id, email := range map[uint]string{2: "ana@example.com", 3: "rui@example.com"} {
		fx.users.users[id] = &user.User{Model: gorm.Model{ID: id}, Email: email}
	}
	fx.teams.athleteIDs = []uint{1, 2, 3}

	pc := NewPaymentController(fx.tracker, fx.payments, fx.users, fx.teams, nil)
	return pc, fx
}

func getAthletesStatus(t *testing.T, pc *PaymentController, query string) ([]AthleteStatusRow, responses.Pagination) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payment/admin/athletes-status?"+query, nil)
	pc.GetAthletesStatus(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Data       []AthleteStatusRow   `json:"data"`
		Pagination responses.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Data, body.Pagination
}

func TestGetAthletesStatusStatusFilterPaginatesFilteredSet(t *testing.T) {
	pc, fx := athletesStatusFixture(t)

	// User 2 has a pending reference for June; 1 and 3 are unpaid.
	_, err := fx.tracker.GenerateReference(2, 6, 2025)
	require.NoError(t, err)

	rows, pg := getAthletesStatus(t, pc, "month=6&year=2025&status=Unpaid&page=1&page_size=1")
	assert.Equal(t, int64(2), pg.TotalItems)
	require.Len(t, rows, 1)
	assert.Equal(t, uint(1), rows[0].UserID)
	assert.Equal(t, StatusUnpaid, rows[0].Status)

	rows, _ = getAthletesStatus(t, pc, "month=6&year=2025&status=Unpaid&page=2&page_size=1")
	require.Len(t, rows, 1)
	assert.Equal(t, uint(3), rows[0].UserID)

	rows, pg = getAthletesStatus(t, pc, "month=6&year=2025&status=Pending&page=1&page_size=20")
	assert.Equal(t, int64(1), pg.TotalItems)
	require.Len(t, rows, 1)
	assert.Equal(t, uint(2), rows[0].UserID)
}

func TestGetAthletesStatusWithoutFilterKeepsRepoPaging(t *testing.T) {
	pc, _ := athletesStatusFixture(t)

	rows, pg := getAthletesStatus(t, pc, "month=6&year=2025&page=1&page_size=2")
	assert.Equal(t, int64(3), pg.TotalItems)
	require.Len(t, rows, 2)
	assert.Equal(t, uint(1), rows[0].UserID)
	assert.Equal(t, uint(2), rows[1].UserID)
}

package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_UnmarshalJSON_RoleDetails(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		check   func(t *testing.T, u User)
	}{
		{
			name:    "employee keeps profile",
			payload: `{"id":"user1","name":"Alex Doe","email":"alex.doe@example.com","role":"employee","profile":{"summary":"hi","skills":["GIS"],"experience":[],"education":[]}}`,
			check: func(t *testing.T, u User) {
				p, ok := u.Profile()
				require.True(t, ok)
				assert.Equal(t, "hi", p.Summary)
				assert.Equal(t, []string{"GIS"}, p.Skills)
				_, isEmployer := u.CompanyID()
				assert.False(t, isEmployer)
			},
		},
		{
			name:    "employer keeps company id and drops profile",
			payload: `{"id":"user2","name":"Jane Smith","email":"jane@example.com","role":"employer","profile":{},"companyId":"comp1"}`,
			check: func(t *testing.T, u User) {
				id, ok := u.CompanyID()
				require.True(t, ok)
				assert.Equal(t, "comp1", id)
				_, hasProfile := u.Profile()
				assert.False(t, hasProfile)
			},
		},
		{
			name:    "admin carries neither",
			payload: `{"id":"user3","name":"Admin","email":"admin@example.com","role":"admin","profile":{"summary":"x"},"companyId":"comp1"}`,
			check: func(t *testing.T, u User) {
				assert.Equal(t, RoleAdmin, u.Role())
				assert.Equal(t, AdminDetails{}, u.Details)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u User
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &u))
			tt.check(t, u)
		})
	}
}

func TestUser_UnmarshalJSON_UnknownRole(t *testing.T) {
	var u User
	err := json.Unmarshal([]byte(`{"id":"x","role":"superuser"}`), &u)
	assert.Error(t, err)
}

func TestUser_MarshalJSON_WireShape(t *testing.T) {
	u := User{
		ID:      "user2",
		Name:    "Jane Smith",
		Email:   "jane@example.com",
		Details: EmployerDetails{CompanyID: "comp1"},
	}
	b, err := json.Marshal(u)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "employer", raw["role"])
	assert.Equal(t, "comp1", raw["companyId"])
	assert.NotContains(t, raw, "profile")
}

func TestUser_MarshalJSON_MissingDetails(t *testing.T) {
	_, err := json.Marshal(User{ID: "broken"})
	assert.Error(t, err)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("employer")
	require.NoError(t, err)
	assert.Equal(t, RoleEmployer, r)

	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestUser_Clone(t *testing.T) {
	orig := &User{ID: "user1", Details: EmployeeDetails{Profile: EmployeeProfile{
		Skills:     []string{"GIS"},
		Experience: []Experience{{ID: "e1", Title: "Ranger"}},
		Education:  []Education{{ID: "ed1", Degree: "BSc"}},
	}}}

	c := orig.Clone()
	p, ok := c.Profile()
	require.True(t, ok)
	p.Skills[0] = "x"
	p.Experience[0].Title = "x"
	p.Education[0].Degree = "x"

	op, _ := orig.Profile()
	assert.Equal(t, "GIS", op.Skills[0])
	assert.Equal(t, "Ranger", op.Experience[0].Title)
	assert.Equal(t, "BSc", op.Education[0].Degree)

	employer := &User{ID: "user2", Details: EmployerDetails{CompanyID: "comp1"}}
	assert.Equal(t, employer, employer.Clone())
	assert.Nil(t, (*User)(nil).Clone())
}

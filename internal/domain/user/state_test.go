package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleUsers() []User {
	return []User{
		{ID: 1, Name: "Ann", Email: "ann@x.com"},
		{ID: 3, Name: "Cid", Email: "cid@x.com"},
		{ID: 5, Name: "Eve", Email: "eve@x.com"},
	}
}

func TestState_WithList_ReversesServerOrder(t *testing.T) {
	s := State{}.WithList(sampleUsers())

	assert.True(t, s.Loaded)
	assert.Equal(t, []int64{5, 3, 1}, ids(s.Users))
}

func TestState_WithList_Empty(t *testing.T) {
	s := State{}.WithList(nil)

	assert.True(t, s.Loaded)
	assert.Empty(t, s.Users)
}

func TestState_WithList_DoesNotTouchInput(t *testing.T) {
	in := sampleUsers()
	_ = State{}.WithList(in)

	assert.Equal(t, []int64{1, 3, 5}, ids(in))
}

func TestState_WithCreated(t *testing.T) {
	s := State{Users: sampleUsers(), NewUser: NewUserDraft{Name: "Alice", Email: "a@x.com"}}

	got := s.WithCreated(User{ID: 9, Name: "Alice", Email: "a@x.com"})

	assert.Equal(t, User{ID: 9, Name: "Alice", Email: "a@x.com"}, got.Users[0])
	assert.Len(t, got.Users, 4)
	assert.True(t, got.NewUser.IsEmpty())
	// receiver untouched
	assert.Len(t, s.Users, 3)
	assert.Equal(t, "Alice", s.NewUser.Name)
}

func TestState_WithUpdated(t *testing.T) {
	s := State{
		Users:      sampleUsers(),
		UpdateUser: UpdateUserDraft{ID: "3", Name: "Bob", Email: "b@x.com"},
	}

	got := s.WithUpdated(s.UpdateUser)

	assert.Equal(t, User{ID: 3, Name: "Bob", Email: "b@x.com"}, got.Users[1])
	assert.Equal(t, sampleUsers()[0], got.Users[0])
	assert.Equal(t, sampleUsers()[2], got.Users[2])
	assert.True(t, got.UpdateUser.IsEmpty())
	assert.Equal(t, "Cid", s.Users[1].Name)
}

func TestState_WithUpdated_UnparsableID(t *testing.T) {
	s := State{Users: sampleUsers()}

	got := s.WithUpdated(UpdateUserDraft{ID: "abc", Name: "Bob", Email: "b@x.com"})

	assert.Equal(t, sampleUsers(), got.Users)
	assert.True(t, got.UpdateUser.IsEmpty())
}

func TestState_WithUpdated_LeadingDigits(t *testing.T) {
	s := State{Users: sampleUsers()}

	got := s.WithUpdated(UpdateUserDraft{ID: " 5 apples", Name: "Eva", Email: "eva@x.com"})

	assert.Equal(t, "Eva", got.Users[2].Name)
}

func TestState_WithDeleted(t *testing.T) {
	s := State{Users: sampleUsers()}

	got := s.WithDeleted(5)

	assert.Equal(t, []int64{1, 3}, ids(got.Users))
	assert.Equal(t, sampleUsers()[:2], got.Users)
	assert.Len(t, s.Users, 3)
}

func TestState_WithDeleted_Missing(t *testing.T) {
	got := State{Users: sampleUsers()}.WithDeleted(42)

	assert.Equal(t, sampleUsers(), got.Users)
}

func TestState_Drafts(t *testing.T) {
	s := State{}.
		WithNewUserDraft(NewUserDraft{Name: "n"}).
		WithUpdateUserDraft(UpdateUserDraft{ID: "1"})

	assert.Equal(t, "n", s.NewUser.Name)
	assert.Equal(t, "1", s.UpdateUser.ID)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"3", 3, true},
		{" 7x", 7, true},
		{"-2", -2, true},
		{"+12", 12, true},
		{"007", 7, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"x1", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseID(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func ids(users []User) []int64 {
	out := make([]int64, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

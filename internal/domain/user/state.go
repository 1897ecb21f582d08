package user

// State is everything the user interface keeps for one browser session:
// the cached user list and the two form drafts.
//
// The update functions below never modify the receiver; each returns a new
// State so a store can hold the previous value safely.
type State struct {
	Users      []User          `json:"users"`
	NewUser    NewUserDraft    `json:"new_user"`
	UpdateUser UpdateUserDraft `json:"update_user"`
	Loaded     bool            `json:"loaded"` // Loaded is set once the list has been fetched
}

// WithList replaces the list with users in reverse order, newest first.
func (s State) WithList(users []User) State {
	reversed := make([]User, len(users))
	for i, u := range users {
		reversed[len(users)-1-i] = u
	}
	s.Users = reversed
	s.Loaded = true
	return s
}

// WithCreated puts u at the front of the list and clears the create draft.
func (s State) WithCreated(u User) State {
	users := make([]User, 0, len(s.Users)+1)
	users = append(users, u)
	users = append(users, s.Users...)
	s.Users = users
	s.NewUser = NewUserDraft{}
	return s
}

// WithUpdated patches the entries matching the draft's parsed ID with the
// draft's name and email, then clears the update draft.
func (s State) WithUpdated(d UpdateUserDraft) State {
	id, ok := ParseID(d.ID)

	users := make([]User, len(s.Users))
	for i, u := range s.Users {
		if ok && u.ID == id {
			u.Name = d.Name
			u.Email = d.Email
		}
		users[i] = u
	}
	s.Users = users
	s.UpdateUser = UpdateUserDraft{}
	return s
}

// WithDeleted drops every entry with the given ID.
func (s State) WithDeleted(id int64) State {
	users := make([]User, 0, len(s.Users))
	for _, u := range s.Users {
		if u.ID != id {
			users = append(users, u)
		}
	}
	s.Users = users
	return s
}

// WithNewUserDraft replaces the create draft.
func (s State) WithNewUserDraft(d NewUserDraft) State {
	s.NewUser = d
	return s
}

// WithUpdateUserDraft replaces the update draft.
func (s State) WithUpdateUserDraft(d UpdateUserDraft) State {
	s.UpdateUser = d
	return s
}

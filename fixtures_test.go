package restmapper

import (
	"github.com/google/uuid"
)

type testUser struct {
	ID      Primary
	Name    Field[string]
	Age     Field[int]
	Active  Field[bool]
	Token   Field[uuid.UUID]
	Created Timestamp
}

func (u *testUser) Fields() Fields {
	return Fields{
		Bind("id", &u.ID),
		Bind("name", &u.Name),
		Bind("age", &u.Age),
		Bind("active", &u.Active),
		Bind("token", &u.Token),
		Bind("created_at", &u.Created),
	}
}

type testComment struct {
	ID   Primary
	Body Field[string]
}

func (c *testComment) Fields() Fields {
	return Fields{
		Bind("id", &c.ID),
		Bind("body", &c.Body),
	}
}

type testPost struct {
	ID       Primary
	Title    Field[string]
	Author   HasOne[testUser, *testUser]
	Comments HasMany[testComment, *testComment]
}

func (p *testPost) Fields() Fields {
	return Fields{
		Bind("id", &p.ID),
		Bind("title", &p.Title),
		Bind("author", &p.Author),
		Bind("comments", &p.Comments),
	}
}

// spyRelation 记录传入的选项
type spyRelation struct {
	dirty     bool
	fragment  string
	readText  string
	readOpts  *Options
	writeOpts *Options
}

func (s *spyRelation) IsDirty() bool { return s.dirty }
func (s *spyRelation) Touch()        { s.dirty = true }
func (s *spyRelation) Clean()        { s.dirty = false }

func (s *spyRelation) ToJSON(opts Options) (string, error) {
	s.writeOpts = &opts
	return s.fragment, nil
}

func (s *spyRelation) FromJSON(text string, opts Options) error {
	s.readText = text
	s.readOpts = &opts
	return nil
}

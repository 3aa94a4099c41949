package objpatch_test

import (
	"testing"

	"github.com/sanity-io/objpatch"
	"github.com/stretchr/testify/require"
)

type Person struct {
	Name     string
	Age      int
	Email    string   `json:"email"`
	Nickname *string  `json:"nickname"`
	Address  Address  `json:"address"`
	Tags     []string `json:"tags"`
	ID       string   `json:"id" patch:"readonly"`
	Password string   `json:"password" patch:"writeonly"`
	internal string
}

func TestRecordRemoveResetsField(t *testing.T) {
	p := &Person{Name: "Bob", Age: 30}

	err := objpatch.ApplyPatch(p, objpatch.NewPatch().Remove("/Age"))
	require.NoError(t, err)
	require.Equal(t, 0, p.Age)
	require.Equal(t, "Bob", p.Name)
}

func TestRecordRemoveZeroValues(t *testing.T) {
	nick := "bobby"
	p := &Person{
		Name:     "Bob",
		Nickname: &nick,
		Address:  Address{City: "Oslo", Zip: 150},
		Tags:     []string{"a"},
	}

	err := objpatch.ApplyPatch(p, objpatch.NewPatch().
		Remove("/name").
		Remove("/nickname").
		Remove("/address").
		Remove("/tags"))
	require.NoError(t, err)
	require.Equal(t, Person{}, *p)
}

func TestRecordCaseInsensitiveFields(t *testing.T) {
	p := &Person{}

	err := objpatch.ApplyPatch(p, objpatch.NewPatch().
		Replace("/NAME", "Bob").
		Add("/Email", "bob@example.com").
		Replace("/Address/City", "Oslo"))
	require.NoError(t, err)
	require.Equal(t, "Bob", p.Name)
	require.Equal(t, "bob@example.com", p.Email)
	require.Equal(t, "Oslo", p.Address.City)
}

func TestRecordConversion(t *testing.T) {
	p := &Person{Age: 30}

	err := objpatch.ApplyPatch(p, objpatch.NewPatch().
		Replace("/Age", 31.0).
		Replace("/address", map[string]interface{}{"city": "Bergen", "zip": 5003.0}).
		Add("/tags", []interface{}{"x", "y"}).
		Add("/nickname", "bobby"))
	require.NoError(t, err)
	require.Equal(t, 31, p.Age)
	require.Equal(t, Address{City: "Bergen", Zip: 5003}, p.Address)
	require.Equal(t, []string{"x", "y"}, p.Tags)
	require.NotNil(t, p.Nickname)
	require.Equal(t, "bobby", *p.Nickname)

	err = objpatch.ApplyPatch(p, objpatch.NewPatch().Replace("/Age", "old"))
	patchErr := requireKind(t, objpatch.InvalidValue, err)
	require.Equal(t, "The value 'old' is invalid for property at path '/Age'.", patchErr.Message)
	require.Equal(t, 31, p.Age)

	err = objpatch.ApplyPatch(p, objpatch.NewPatch().Replace("/Age", nil))
	requireKind(t, objpatch.InvalidValue, err)
	require.Equal(t, 31, p.Age)

	err = objpatch.ApplyPatch(p, objpatch.NewPatch().Replace("/nickname", nil))
	require.NoError(t, err)
	require.Nil(t, p.Nickname)
}

func TestRecordAccess(t *testing.T) {
	p := &Person{ID: "p1", Password: "secret"}

	err := objpatch.ApplyPatch(p, objpatch.NewPatch().Test("/id", "p1"))
	require.NoError(t, err)

	err = objpatch.ApplyPatch(p, objpatch.NewPatch().Replace("/id", "p2"))
	patchErr := requireKind(t, objpatch.PropertyNotWritable, err)
	require.Equal(t, "The property at path '/id' could not be updated.", patchErr.Message)

	err = objpatch.ApplyPatch(p, objpatch.NewPatch().Remove("/id"))
	requireKind(t, objpatch.PropertyNotWritable, err)
	require.Equal(t, "p1", p.ID)

	err = objpatch.ApplyPatch(p, objpatch.NewPatch().Test("/password", "secret"))
	patchErr = requireKind(t, objpatch.PropertyNotReadable, err)
	require.Equal(t, "The property at path '/password' could not be read.", patchErr.Message)

	err = objpatch.ApplyPatch(p, objpatch.NewPatch().Replace("/password", "hunter2"))
	require.NoError(t, err)
	require.Equal(t, "hunter2", p.Password)
}

func TestRecordUnknownField(t *testing.T) {
	p := &Person{}

	err := objpatch.ApplyPatch(p, objpatch.NewPatch().Add("/internal", "x"))
	patchErr := requireKind(t, objpatch.TargetNotFound, err)
	require.Equal(t, "The target location specified by path segment 'internal' was not found.", patchErr.Message)

	err = objpatch.ApplyPatch(p, objpatch.NewPatch().Add("/-", "x"))
	requireKind(t, objpatch.TargetNotFound, err)

	err = objpatch.ApplyPatch(p, objpatch.NewPatch().Add("/missing/city", "x"))
	patchErr = requireKind(t, objpatch.TargetNotFound, err)
	require.Equal(t, "The 'add' operation at path '/missing/city' could not be performed.", patchErr.Message)
}

func TestRecordNilPointerField(t *testing.T) {
	type Team struct {
		Lead *Person
	}
	team := &Team{}

	err := objpatch.ApplyPatch(team, objpatch.NewPatch().Replace("/Lead/Name", "Bob"))
	patchErr := requireKind(t, objpatch.TargetNotFound, err)
	require.Equal(t, "The target location specified by path segment 'Name' was not found.", patchErr.Message)

	err = objpatch.ApplyPatch(team, objpatch.NewPatch().
		Add("/Lead", map[string]interface{}{"Name": "Bob"}).
		Replace("/Lead/Age", 40.0))
	require.NoError(t, err)
	require.Equal(t, "Bob", team.Lead.Name)
	require.Equal(t, 40, team.Lead.Age)
}

func TestRecordInsideMapping(t *testing.T) {
	doc := map[string]Address{"home": {City: "Oslo"}}

	err := objpatch.ApplyPatch(doc, objpatch.NewPatch().Replace("/home/zip", 150.0))
	require.NoError(t, err)
	require.Equal(t, Address{City: "Oslo", Zip: 150}, doc["home"])
}

func TestRecordInsideInterface(t *testing.T) {
	doc := map[string]interface{}{"home": Address{City: "Oslo"}}

	err := objpatch.ApplyPatch(doc, objpatch.NewPatch().Replace("/home/city", "Bergen"))
	require.NoError(t, err)
	require.Equal(t, Address{City: "Bergen"}, doc["home"])
}

func TestRecordByValueRoot(t *testing.T) {
	err := objpatch.ApplyPatch(Person{}, objpatch.NewPatch().Replace("/Name", "Bob"))
	requireKind(t, objpatch.UnsupportedContainer, err)
}

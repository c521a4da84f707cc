package store

import (
	"errors"
	"testing"

	"froot-boot-api-server/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func testStore(t *testing.T, spec Spec) *Store[models.Member] {
	t.Helper()
	allowed := make(map[string]struct{}, len(spec.Allowed))
	for _, f := range spec.Allowed {
		allowed[f] = struct{}{}
	}
	// No collection handle needed for the validation paths under test.
	return &Store[models.Member]{spec: spec, allowed: allowed, log: logrus.WithField("collection", spec.Collection)}
}

func memberSpec() Spec {
	return Spec{
		Collection: "members",
		Allowed:    []string{"name", "location", "phone", "email", "password"},
		Required:   []string{"name", "phone", "email", "password"},
	}
}

func TestValidate_DisallowedField(t *testing.T) {
	t.Parallel()

	s := testStore(t, memberSpec())

	err := s.validate(bson.M{"name": "x", "role": "admin"}, false)
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "role", ve.Field)
}

func TestValidate_LegalSubsetSucceeds(t *testing.T) {
	t.Parallel()

	s := testStore(t, memberSpec())
	assert.NoError(t, s.validate(bson.M{"name": "x", "phone": "1"}, false))
}

func TestValidate_MissingRequiredOnInsert(t *testing.T) {
	t.Parallel()

	s := testStore(t, memberSpec())

	err := s.validate(bson.M{"name": "x"}, true)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestHash_AppliesHookToField(t *testing.T) {
	t.Parallel()

	spec := memberSpec()
	spec.HashField = "password"
	spec.HashFunc = func(plain string) (string, error) {
		return "hashed:" + plain, nil
	}
	s := testStore(t, spec)

	data := bson.M{"password": "secret"}
	require.NoError(t, s.hash(data))
	assert.Equal(t, "hashed:secret", data["password"])
}

func TestHash_SkipsWhenAbsent(t *testing.T) {
	t.Parallel()

	spec := memberSpec()
	spec.HashField = "password"
	spec.HashFunc = func(string) (string, error) { t.Fatal("must not be called"); return "", nil }
	s := testStore(t, spec)

	assert.NoError(t, s.hash(bson.M{"name": "x"}))
}

func TestHash_RejectsNonString(t *testing.T) {
	t.Parallel()

	spec := memberSpec()
	spec.HashField = "password"
	spec.HashFunc = func(p string) (string, error) { return p, nil }
	s := testStore(t, spec)

	err := s.hash(bson.M{"password": 42})
	assert.True(t, IsValidation(err))
}

func TestObjectID_MalformedIsNotFound(t *testing.T) {
	t.Parallel()

	s := testStore(t, memberSpec())
	_, err := s.objectID("not-a-hex-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWrapWrite_DuplicateKey(t *testing.T) {
	t.Parallel()

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	err := wrapWrite(dup)
	assert.ErrorIs(t, err, ErrDuplicate)

	other := errors.New("boom")
	assert.Equal(t, other, wrapWrite(other))
	assert.NoError(t, wrapWrite(nil))
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total   int64
		perPage int64
		want    int64
	}{
		{12, 5, 3},
		{10, 5, 2},
		{0, 5, 0},
		{1, 5, 1},
		{5, 0, 0},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, TotalPages(tc.total, tc.perPage), "TotalPages(%d, %d)", tc.total, tc.perPage)
	}
}

func TestValidationError_Message(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Field: "role", Msg: "property is not allowed"}
	assert.Contains(t, err.Error(), "role")

	bare := &ValidationError{Msg: "bad"}
	assert.Equal(t, "validation failed: bad", bare.Error())
}

package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/alexanderramin/tradieone/internal/api"
	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/alexanderramin/tradieone/internal/form"
	"github.com/alexanderramin/tradieone/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_GetAndUpdate(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.SetProfile(domain.Record{"id": "u1", "firstName": "Kim", "email": "kim@example.com"})
	svc := NewProfileService(api.NewClient(fb.URL(), api.StaticToken("t")))
	ctx := context.Background()

	rec, err := svc.Get(ctx)
	require.NoError(t, err)
	f := form.ProfileFromRecord(rec)
	assert.Equal(t, "Kim", f.FirstName)

	f.Company = "Kim's Carpentry"
	require.NoError(t, svc.Update(ctx, f))
	assert.Equal(t, "Kim's Carpentry", fb.Profile().String("company"))
	assert.Equal(t, 1, fb.Count(http.MethodPut, "/api/UserProfile"))
}

func TestProfileService_UpdateValidates(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	svc := NewProfileService(api.NewClient(fb.URL(), api.StaticToken("t")))

	err := svc.Update(context.Background(), &form.Profile{Phone: "123"})
	var fe form.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Phone must be at least 6 characters", fe["phone"])
	assert.Empty(t, fb.Requests())
}

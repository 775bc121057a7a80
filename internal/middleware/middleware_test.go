package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"leadsdesk/internal/auth"
	"leadsdesk/internal/errs"
	"leadsdesk/internal/model"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// stubUserRepo serves exactly one user by ID.
type stubUserRepo struct {
	user *model.User
}

func (r *stubUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, errs.ErrNotFound
}

func (r *stubUserRepo) Create(context.Context, *model.User) (*model.User, error) {
	return nil, errs.ErrNotFound
}
func (r *stubUserRepo) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, errs.ErrNotFound
}
func (r *stubUserRepo) FindByResetDigest(context.Context, string, time.Time) (*model.User, error) {
	return nil, errs.ErrNotFound
}
func (r *stubUserRepo) Find(context.Context, bson.M, ...*options.FindOptions) ([]*model.User, error) {
	return nil, nil
}
func (r *stubUserRepo) Count(context.Context, bson.M) (int64, error) { return 0, nil }
func (r *stubUserRepo) UpdateFields(context.Context, primitive.ObjectID, bson.M) error {
	return nil
}
func (r *stubUserRepo) ClearResetToken(context.Context, primitive.ObjectID) error { return nil }
func (r *stubUserRepo) Delete(context.Context, primitive.ObjectID) error          { return nil }
func (r *stubUserRepo) EnsureIndexes(context.Context) error                       { return nil }

func newAuthRouter(t *testing.T, tokens *auth.TokenIssuer, users *stubUserRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Authenticate(tokens, users), func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID.Hex()})
	})
	return r
}

func TestAuthenticate_ResolvesPrincipalFreshFromStore(t *testing.T) {
	t.Parallel()

	tokens, err := auth.NewTokenIssuer([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	if err != nil {
		t.Fatalf("new token issuer: %v", err)
	}
	user := &model.User{ID: primitive.NewObjectID(), Name: "A", Email: "a@example.com", Role: auth.RoleCSR}
	users := &stubUserRepo{user: user}
	router := newAuthRouter(t, tokens, users)

	token, err := tokens.Issue(user.ID.Hex())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	// Deleting the account invalidates otherwise valid tokens.
	users.user = nil
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status after deletion = %d, want 401", w.Code)
	}
}

func TestAuthenticate_RejectsMissingAndMangledTokens(t *testing.T) {
	t.Parallel()

	tokens, err := auth.NewTokenIssuer([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	if err != nil {
		t.Fatalf("new token issuer: %v", err)
	}
	router := newAuthRouter(t, tokens, &stubUserRepo{})

	for _, header := range []string{"", "Bearer", "Bearer not-a-jwt", "Basic dXNlcg==", "Bearer a b"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

func withPrincipal(p auth.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(principalKey, p)
		c.Next()
	}
}

func TestRequirePermission_AnyMatchPassesAndDenialNamesPermissions(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	csr := auth.Principal{ID: primitive.NewObjectID(), Role: auth.RoleCSR, Permissions: []auth.Permission{auth.PermViewLeads}}
	admin := auth.Principal{ID: primitive.NewObjectID(), Role: auth.RoleAdmin}
	bare := auth.Principal{ID: primitive.NewObjectID(), Role: auth.RoleCSR}

	cases := []struct {
		name      string
		principal auth.Principal
		required  []auth.Permission
		want      int
	}{
		{"holder passes", csr, []auth.Permission{auth.PermViewLeads}, http.StatusOK},
		{"any of several", csr, []auth.Permission{auth.PermEditLeads, auth.PermViewLeads}, http.StatusOK},
		{"admin bypasses", admin, []auth.Permission{auth.PermDeleteLeads}, http.StatusOK},
		{"no grant denied", bare, []auth.Permission{auth.PermViewLeads}, http.StatusForbidden},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := gin.New()
			r.GET("/x", withPrincipal(tc.principal), RequirePermission(tc.required...), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d", w.Code, tc.want)
			}

			if tc.want == http.StatusForbidden {
				var resp model.ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if len(resp.RequiredPermissions) != len(tc.required) {
					t.Fatalf("requiredPermissions = %v, want %d entries", resp.RequiredPermissions, len(tc.required))
				}
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	csr := auth.Principal{ID: primitive.NewObjectID(), Role: auth.RoleCSR, Permissions: []auth.Permission{auth.PermViewLeads}}
	admin := auth.Principal{ID: primitive.NewObjectID(), Role: auth.RoleAdmin}

	r := gin.New()
	r.GET("/admin", withPrincipal(admin), RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/csr", withPrincipal(csr), RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200", w.Code)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/csr", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("csr status = %d, want 403", w.Code)
	}
}

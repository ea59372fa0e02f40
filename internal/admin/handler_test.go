package admin_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RolAlek/personal-blog/internal/category"
	"github.com/RolAlek/personal-blog/internal/database"
	"github.com/RolAlek/personal-blog/internal/location"
	"github.com/RolAlek/personal-blog/internal/post"
	"github.com/RolAlek/personal-blog/internal/testutil"
)

type adminPosts struct {
	Posts []struct {
		ID          string  `json:"id"`
		Title       string  `json:"title"`
		IsPublished bool    `json:"is_published"`
		CategoryID  *string `json:"category_id"`
	} `json:"posts"`
	Page struct {
		Count int64 `json:"count"`
	} `json:"page"`
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	r := testutil.Setup(t)
	reader := testutil.CreateUser(t, "reader", false)
	admin := testutil.CreateUser(t, "boss", true)

	paths := []string{"/api/admin/stats", "/api/admin/posts", "/api/admin/categories", "/api/admin/locations"}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, testutil.Do(r, http.MethodGet, path, "", nil).Code)
			assert.Equal(t, http.StatusForbidden, testutil.Do(r, http.MethodGet, path, testutil.Token(t, reader), nil).Code)
			assert.Equal(t, http.StatusOK, testutil.Do(r, http.MethodGet, path, testutil.Token(t, admin), nil).Code)
		})
	}
}

func TestAdminListsEveryPost(t *testing.T) {
	r := testutil.Setup(t)
	admin := testutil.CreateUser(t, "boss", true)
	author := testutil.CreateUser(t, "alice", false)
	hidden := testutil.CreateCategory(t, "hidden", false)
	past := time.Now().Add(-time.Hour)

	testutil.CreatePost(t, testutil.PostSpec{Title: "Sunrise in Lyon", Author: author, Published: true, PubDate: past})
	testutil.CreatePost(t, testutil.PostSpec{Title: "Draft", Author: author, Published: false, PubDate: past})
	testutil.CreatePost(t, testutil.PostSpec{Title: "Later", Author: author, Published: true, PubDate: time.Now().Add(time.Hour)})
	testutil.CreatePost(t, testutil.PostSpec{Title: "Sunset", Author: author, Published: true, PubDate: past, Category: hidden})

	token := testutil.Token(t, admin)

	w := testutil.Do(r, http.MethodGet, "/api/admin/posts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all adminPosts
	testutil.Decode(t, w, &all)
	assert.Equal(t, int64(4), all.Page.Count)
	assert.Len(t, all.Posts, 4)

	w = testutil.Do(r, http.MethodGet, "/api/admin/posts?q=SUN", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var search adminPosts
	testutil.Decode(t, w, &search)
	require.Len(t, search.Posts, 2)
	// tri par date puis par titre
	assert.Equal(t, "Sunrise in Lyon", search.Posts[0].Title)
	assert.Equal(t, "Sunset", search.Posts[1].Title)

	w = testutil.Do(r, http.MethodGet, "/api/admin/posts?category_id="+hidden.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var filtered adminPosts
	testutil.Decode(t, w, &filtered)
	require.Len(t, filtered.Posts, 1)
	assert.Equal(t, "Sunset", filtered.Posts[0].Title)
}

func TestModeratePost(t *testing.T) {
	r := testutil.Setup(t)
	admin := testutil.CreateUser(t, "boss", true)
	author := testutil.CreateUser(t, "alice", false)
	travel := testutil.CreateCategory(t, "travel", true)
	p := testutil.CreatePost(t, testutil.PostSpec{Title: "Trip", Author: author, Published: true, PubDate: time.Now().Add(-time.Hour), Category: travel})

	token := testutil.Token(t, admin)
	path := "/api/admin/posts/" + p.ID

	w := testutil.Do(r, http.MethodPatch, path, token, map[string]interface{}{"is_published": false, "category_id": ""})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored post.Post
	require.NoError(t, database.DB.First(&stored, "id = ?", p.ID).Error)
	assert.False(t, stored.IsPublished)
	assert.Nil(t, stored.CategoryID)
	assert.Equal(t, "Trip", stored.Title)

	// l'auteur n'est pas administrateur
	w = testutil.Do(r, http.MethodPatch, path, testutil.Token(t, author), map[string]interface{}{"is_published": true})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutil.Do(r, http.MethodPatch, path, token, map[string]interface{}{"category_id": "missing"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.Do(r, http.MethodPatch, "/api/admin/posts/missing", token, map[string]interface{}{"is_published": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCategoryKeepsPosts(t *testing.T) {
	r := testutil.Setup(t)
	admin := testutil.CreateUser(t, "boss", true)
	author := testutil.CreateUser(t, "alice", false)
	travel := testutil.CreateCategory(t, "travel", true)
	p := testutil.CreatePost(t, testutil.PostSpec{Title: "Trip", Author: author, Published: true, PubDate: time.Now().Add(-time.Hour), Category: travel})

	w := testutil.Do(r, http.MethodDelete, "/api/admin/categories/"+travel.ID, testutil.Token(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stored post.Post
	require.NoError(t, database.DB.First(&stored, "id = ?", p.ID).Error)
	assert.Nil(t, stored.CategoryID)

	var count int64
	database.DB.Model(&category.Category{}).Count(&count)
	assert.Zero(t, count)

	w = testutil.Do(r, http.MethodDelete, "/api/admin/categories/"+travel.ID, testutil.Token(t, admin), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCategoryDerivesUniqueSlug(t *testing.T) {
	r := testutil.Setup(t)
	token := testutil.Token(t, testutil.CreateUser(t, "boss", true))
	body := map[string]interface{}{"title": "Road Trips", "description": "On the road"}

	var first, second struct {
		Category category.Category `json:"category"`
	}
	w := testutil.Do(r, http.MethodPost, "/api/admin/categories", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	testutil.Decode(t, w, &first)
	assert.Equal(t, "road-trips", first.Category.Slug)
	assert.True(t, first.Category.IsPublished)

	w = testutil.Do(r, http.MethodPost, "/api/admin/categories", token, body)
	require.Equal(t, http.StatusCreated, w.Code)
	testutil.Decode(t, w, &second)
	assert.Equal(t, "road-trips-2", second.Category.Slug)

	body["slug"] = "road-trips"
	w = testutil.Do(r, http.MethodPost, "/api/admin/categories", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body["slug"] = "bad slug!"
	w = testutil.Do(r, http.MethodPost, "/api/admin/categories", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardStats(t *testing.T) {
	r := testutil.Setup(t)
	admin := testutil.CreateUser(t, "boss", true)
	author := testutil.CreateUser(t, "alice", false)
	past := time.Now().Add(-time.Hour)
	live := testutil.CreatePost(t, testutil.PostSpec{Title: "Live", Author: author, Published: true, PubDate: past})
	testutil.CreatePost(t, testutil.PostSpec{Title: "Draft", Author: author, Published: false, PubDate: past})
	testutil.CreatePost(t, testutil.PostSpec{Title: "Later", Author: author, Published: true, PubDate: time.Now().Add(time.Hour)})
	testutil.CreateComment(t, live, admin, "nice")

	w := testutil.Do(r, http.MethodGet, "/api/admin/stats", testutil.Token(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Stats map[string]interface{} `json:"stats"`
	}
	testutil.Decode(t, w, &resp)
	assert.EqualValues(t, 2, resp.Stats["total_users"])
	assert.EqualValues(t, 3, resp.Stats["total_posts"])
	assert.EqualValues(t, 1, resp.Stats["live_posts"])
	assert.EqualValues(t, 1, resp.Stats["scheduled_posts"])
	assert.EqualValues(t, 1, resp.Stats["draft_posts"])
	assert.EqualValues(t, 1, resp.Stats["total_comments"])

	w = testutil.Do(r, http.MethodGet, "/api/admin/stats?start_date=yesterday", testutil.Token(t, admin), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteLocationKeepsPosts(t *testing.T) {
	r := testutil.Setup(t)
	admin := testutil.CreateUser(t, "boss", true)
	author := testutil.CreateUser(t, "alice", false)
	paris := testutil.CreateLocation(t, "Paris", true)
	p := testutil.CreatePost(t, testutil.PostSpec{Title: "Trip", Author: author, Published: true, PubDate: time.Now().Add(-time.Hour), Location: paris})

	w := testutil.Do(r, http.MethodDelete, "/api/admin/locations/"+paris.ID, testutil.Token(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stored post.Post
	require.NoError(t, database.DB.First(&stored, "id = ?", p.ID).Error)
	assert.Nil(t, stored.LocationID)
	assert.Equal(t, "Trip", stored.Title)

	var count int64
	database.DB.Model(&location.Location{}).Count(&count)
	assert.Zero(t, count)

	w = testutil.Do(r, http.MethodDelete, "/api/admin/locations/"+paris.ID, testutil.Token(t, admin), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAndUpdateLocation(t *testing.T) {
	r := testutil.Setup(t)
	token := testutil.Token(t, testutil.CreateUser(t, "boss", true))

	w := testutil.Do(r, http.MethodPost, "/api/admin/locations", token, map[string]interface{}{"name": "Lyon"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Location location.Location `json:"location"`
	}
	testutil.Decode(t, w, &created)
	assert.Equal(t, "Lyon", created.Location.Name)
	assert.True(t, created.Location.IsPublished)

	w = testutil.Do(r, http.MethodPost, "/api/admin/locations", token, map[string]interface{}{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	path := "/api/admin/locations/" + created.Location.ID
	w = testutil.Do(r, http.MethodPatch, path, token, map[string]interface{}{"name": "Lyon 2e", "is_published": false})
	require.Equal(t, http.StatusOK, w.Code)

	var stored location.Location
	require.NoError(t, database.DB.First(&stored, "id = ?", created.Location.ID).Error)
	assert.Equal(t, "Lyon 2e", stored.Name)
	assert.False(t, stored.IsPublished)

	w = testutil.Do(r, http.MethodPatch, "/api/admin/locations/missing", token, map[string]interface{}{"name": "Nowhere"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminLookupFailure(t *testing.T) {
	r := testutil.Setup(t)
	token := testutil.Token(t, testutil.CreateUser(t, "boss", true))
	testutil.CloseDB(t)

	// la vérification du rôle échoue avant le handler
	w := testutil.Do(r, http.MethodPatch, "/api/admin/locations/any", token, map[string]interface{}{"name": "x"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

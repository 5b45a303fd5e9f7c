package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateListItem(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice", "hunter2-long-enough")
	book := env.addBook(t, "The Iliad", "Homer")

	rec := env.do(t, http.MethodPost, "/api/list-items", user.Token, map[string]string{
		"bookId": book.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp listItemResponse
	decodeJSON(t, rec, &resp)
	item := resp.ListItem
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, book.ID, item.BookID)
	assert.Equal(t, user.ID, item.OwnerID)
	assert.Equal(t, -1, item.Rating)
	assert.Empty(t, item.Notes)
	assert.NotZero(t, item.StartDate)
	assert.Nil(t, item.FinishDate)
	require.NotNil(t, item.Book)
	assert.Equal(t, "The Iliad", item.Book.Title)
}

func TestCreateListItemWithoutBookID(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice", "hunter2-long-enough")

	rec := env.do(t, http.MethodPost, "/api/list-items", user.Token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No bookId provided", errorMessage(t, rec))
}

func TestCreateListItemDuplicate(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice", "hunter2-long-enough")
	book := env.addBook(t, "The Iliad", "Homer")

	rec := env.do(t, http.MethodPost, "/api/list-items", user.Token, map[string]string{"bookId": book.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/list-items", user.Token, map[string]string{"bookId": book.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	wantMsg := fmt.Sprintf("User %s already has a list item for the book with the ID %s", user.ID, book.ID)
	assert.Equal(t, wantMsg, errorMessage(t, rec))
}

func TestListListItemsScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "hunter2-long-enough")
	bob := env.register(t, "bob", "hunter2-long-enough")
	iliad := env.addBook(t, "The Iliad", "Homer")
	odyssey := env.addBook(t, "The Odyssey", "Homer")

	rec := env.do(t, http.MethodPost, "/api/list-items", alice.Token, map[string]string{"bookId": iliad.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/list-items", bob.Token, map[string]string{"bookId": odyssey.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/list-items", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listItemsResponse
	decodeJSON(t, rec, &resp)
	require.Len(t, resp.ListItems, 1)
	assert.Equal(t, iliad.ID, resp.ListItems[0].BookID)
	require.NotNil(t, resp.ListItems[0].Book)
	assert.Equal(t, "The Iliad", resp.ListItems[0].Book.Title)
}

func TestListListItemsRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/list-items", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No authorization token was found", errorMessage(t, rec))
}

func TestUpdateListItemPartial(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice", "hunter2-long-enough")
	book := env.addBook(t, "The Iliad", "Homer")

	rec := env.do(t, http.MethodPost, "/api/list-items", user.Token, map[string]string{"bookId": book.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	var created listItemResponse
	decodeJSON(t, rec, &created)

	finished := int64(1700000000000)
	rec = env.do(t, http.MethodPut, "/api/list-items/"+created.ListItem.ID, user.Token, map[string]interface{}{
		"notes":      "an all-time favorite",
		"finishDate": finished,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated listItemResponse
	decodeJSON(t, rec, &updated)
	assert.Equal(t, "an all-time favorite", updated.ListItem.Notes)
	require.NotNil(t, updated.ListItem.FinishDate)
	assert.Equal(t, finished, *updated.ListItem.FinishDate)

	// Fields absent from the body keep their stored values.
	assert.Equal(t, created.ListItem.Rating, updated.ListItem.Rating)
	assert.Equal(t, created.ListItem.StartDate, updated.ListItem.StartDate)
	assert.Equal(t, created.ListItem.BookID, updated.ListItem.BookID)
}

func TestListItemOwnershipGuard(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "hunter2-long-enough")
	bob := env.register(t, "bob", "hunter2-long-enough")
	book := env.addBook(t, "The Iliad", "Homer")

	rec := env.do(t, http.MethodPost, "/api/list-items", alice.Token, map[string]string{"bookId": book.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	var created listItemResponse
	decodeJSON(t, rec, &created)
	itemID := created.ListItem.ID

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			var body interface{}
			if method == http.MethodPut {
				body = map[string]interface{}{"rating": 5}
			}
			rec := env.do(t, method, "/api/list-items/"+itemID, bob.Token, body)
			assert.Equal(t, http.StatusForbidden, rec.Code)
			wantMsg := fmt.Sprintf("User with id %s is not authorized to access the list item %s", bob.ID, itemID)
			assert.Equal(t, wantMsg, errorMessage(t, rec))
		})
	}

	// The owner still has full access.
	rec = env.do(t, http.MethodGet, "/api/list-items/"+itemID, alice.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteListItem(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice", "hunter2-long-enough")
	book := env.addBook(t, "The Iliad", "Homer")

	rec := env.do(t, http.MethodPost, "/api/list-items", user.Token, map[string]string{"bookId": book.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	var created listItemResponse
	decodeJSON(t, rec, &created)
	itemID := created.ListItem.ID

	rec = env.do(t, http.MethodDelete, "/api/list-items/"+itemID, user.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp successResponse
	decodeJSON(t, rec, &resp)
	assert.True(t, resp.Success)

	rec = env.do(t, http.MethodGet, "/api/list-items/"+itemID, user.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	wantMsg := fmt.Sprintf("No list item was found with the id of %s", itemID)
	assert.Equal(t, wantMsg, errorMessage(t, rec))
}

package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// In-memory fakes for the repository and storage contracts. They mirror
// the Postgres implementations' observable behavior: owner scoping,
// ordering, sentinel errors.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- user repository ---

type fakeUserRepo struct {
	users   map[string]*models.User
	nextID  int
	listErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) add(u *models.User) *models.User {
	if u.ID == "" {
		f.nextID++
		u.ID = fmt.Sprintf("user-%d", f.nextID)
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return &domain.ConflictError{Message: "email already registered", ResourceType: "user"}
		}
	}
	f.add(user)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u.Role = role
	return u, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) CountAdmins(ctx context.Context) (int, error) {
	n := 0
	for _, u := range f.users {
		if u.Role == models.RoleAdmin {
			n++
		}
	}
	return n, nil
}

// --- folder repository ---

type fakeFolderRepo struct {
	folders map[string]*models.Folder
	nextID  int
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]*models.Folder)}
}

func (f *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	f.nextID++
	folder.ID = fmt.Sprintf("folder-%d", f.nextID)
	folder.CreatedAt = time.Now()
	clone := *folder
	f.folders[folder.ID] = &clone
	return nil
}

func (f *fakeFolderRepo) GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	folder, ok := f.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	clone := *folder
	return &clone, nil
}

func (f *fakeFolderRepo) Rename(ctx context.Context, id, ownerID, name string) (*models.Folder, error) {
	folder, ok := f.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	folder.Name = name
	clone := *folder
	return &clone, nil
}

func (f *fakeFolderRepo) ListChildren(ctx context.Context, ownerID string, parentID *string) ([]models.Folder, error) {
	var out []models.Folder
	for _, folder := range f.folders {
		if folder.OwnerID != ownerID {
			continue
		}
		if sameParent(folder.ParentID, parentID) {
			out = append(out, *folder)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeFolderRepo) ListAll(ctx context.Context, ownerID string) ([]models.Folder, error) {
	var out []models.Folder
	for _, folder := range f.folders {
		if folder.OwnerID == ownerID {
			out = append(out, *folder)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeFolderRepo) CollectDescendants(ctx context.Context, id, ownerID string) ([]string, error) {
	root, ok := f.folders[id]
	if !ok || root.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	ids := []string{id}
	frontier := []string{id}
	for len(frontier) > 0 {
		var next []string
		for _, folder := range f.folders {
			if folder.ParentID == nil {
				continue
			}
			for _, fid := range frontier {
				if *folder.ParentID == fid {
					ids = append(ids, folder.ID)
					next = append(next, folder.ID)
				}
			}
		}
		frontier = next
	}
	return ids, nil
}

func (f *fakeFolderRepo) DeleteByIDs(ctx context.Context, ownerID string, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		folder, ok := f.folders[id]
		if ok && folder.OwnerID == ownerID {
			delete(f.folders, id)
			n++
		}
	}
	return n, nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// --- document repository ---

type fakeDocRepo struct {
	docs      map[string]*models.Document
	nextID    int
	createErr error
	deleteErr error
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{docs: make(map[string]*models.Document)}
}

func (f *fakeDocRepo) Create(ctx context.Context, doc *models.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	doc.ID = fmt.Sprintf("doc-%d", f.nextID)
	doc.UploadedAt = time.Now()
	clone := *doc
	f.docs[doc.ID] = &clone
	return nil
}

func (f *fakeDocRepo) GetByID(ctx context.Context, id, ownerID string) (*models.Document, error) {
	doc, ok := f.docs[id]
	if !ok || doc.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	clone := *doc
	return &clone, nil
}

func (f *fakeDocRepo) ListByFolder(ctx context.Context, ownerID string, folderID *string) ([]models.Document, error) {
	var out []models.Document
	for _, doc := range f.docs {
		if doc.OwnerID == ownerID && sameParent(doc.FolderID, folderID) {
			out = append(out, *doc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (f *fakeDocRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Document, error) {
	var out []models.Document
	for _, doc := range f.docs {
		if doc.OwnerID == ownerID {
			out = append(out, *doc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (f *fakeDocRepo) ListByFolderIDs(ctx context.Context, ownerID string, folderIDs []string) ([]models.Document, error) {
	set := make(map[string]bool, len(folderIDs))
	for _, id := range folderIDs {
		set[id] = true
	}
	var out []models.Document
	for _, doc := range f.docs {
		if doc.OwnerID == ownerID && doc.FolderID != nil && set[*doc.FolderID] {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (f *fakeDocRepo) Update(ctx context.Context, doc *models.Document) error {
	existing, ok := f.docs[doc.ID]
	if !ok || existing.OwnerID != doc.OwnerID {
		return domain.ErrNotFound
	}
	existing.Name = doc.Name
	existing.FolderID = doc.FolderID
	return nil
}

func (f *fakeDocRepo) Delete(ctx context.Context, id, ownerID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	doc, ok := f.docs[id]
	if !ok || doc.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeDocRepo) DeleteByFolderIDs(ctx context.Context, ownerID string, folderIDs []string) (int64, error) {
	set := make(map[string]bool, len(folderIDs))
	for _, id := range folderIDs {
		set[id] = true
	}
	var n int64
	for id, doc := range f.docs {
		if doc.OwnerID == ownerID && doc.FolderID != nil && set[*doc.FolderID] {
			delete(f.docs, id)
			n++
		}
	}
	return n, nil
}

// --- blob store ---

type fakeBlobStore struct {
	blobs     map[string][]byte
	deleted   []string
	putErr    error
	deleteErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.blobs[key] = data
	return key, nil
}

func (f *fakeBlobStore) Open(ctx context.Context, ref string) (io.ReadCloser, int64, error) {
	data, ok := f.blobs[ref]
	if !ok {
		return nil, 0, fmt.Errorf("blob %s not found", ref)
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, ref string) error {
	f.deleted = append(f.deleted, ref)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.blobs, ref)
	return nil
}

// --- transaction manager ---

type fakeTxManager struct {
	execErr error
	calls   int
}

func (f *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	f.calls++
	if f.execErr != nil {
		return f.execErr
	}
	return fn(ctx)
}

// --- access policy ---

type allowAllPolicy struct{}

func (allowAllPolicy) CanManageUsers(ctx context.Context, actorID string) error { return nil }
func (allowAllPolicy) CanReadUser(ctx context.Context, actorID, targetID string) error {
	return nil
}
func (allowAllPolicy) CanChangeRole(ctx context.Context, actorID, targetID string, newRole models.Role) error {
	return nil
}
func (allowAllPolicy) CanDeleteUser(ctx context.Context, actorID, targetID string) error {
	return nil
}

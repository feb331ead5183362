package application

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pixelgrove/storefront/internal/domain/entity"
	repo "github.com/pixelgrove/storefront/internal/domain/repository"
)

// In-memory repository fakes. They mirror the Postgres implementations'
// contracts (sentinel errors, idempotent set semantics) closely enough for
// service-level tests.

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return repo.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	out := map[string]*entity.Product{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			cp := *p
			out[id] = &cp
		}
	}
	return out, nil
}

func (f *fakeProductRepo) List(_ context.Context) ([]entity.Product, error) {
	out := make([]entity.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProductRepo) SetImage(_ context.Context, id, url string) error {
	p, ok := f.products[id]
	if !ok {
		return repo.ErrNotFound
	}
	p.Image = url
	return nil
}

type cartKey struct{ userID, productID string }

type fakeCartRepo struct {
	products *fakeProductRepo
	cart     map[cartKey]int
	cartSeq  map[cartKey]int
	wishlist map[cartKey]int
	seq      int
}

func newFakeCartRepo(products *fakeProductRepo) *fakeCartRepo {
	return &fakeCartRepo{
		products: products,
		cart:     map[cartKey]int{},
		cartSeq:  map[cartKey]int{},
		wishlist: map[cartKey]int{},
	}
}

func (f *fakeCartRepo) GetCart(_ context.Context, userID string) ([]entity.CartLine, error) {
	type row struct {
		key cartKey
		seq int
	}
	rows := make([]row, 0)
	for k, s := range f.cartSeq {
		if k.userID == userID {
			rows = append(rows, row{k, s})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	out := make([]entity.CartLine, 0, len(rows))
	for _, r := range rows {
		p := f.products.products[r.key.productID]
		out = append(out, entity.CartLine{Product: *p, Quantity: f.cart[r.key]})
	}
	return out, nil
}

func (f *fakeCartRepo) GetCartQuantity(_ context.Context, userID, productID string) (int, bool, error) {
	q, ok := f.cart[cartKey{userID, productID}]
	return q, ok, nil
}

func (f *fakeCartRepo) UpsertCartLine(_ context.Context, userID, productID string, quantity int) error {
	k := cartKey{userID, productID}
	if _, ok := f.cart[k]; !ok {
		f.seq++
		f.cartSeq[k] = f.seq
	}
	f.cart[k] = quantity
	return nil
}

func (f *fakeCartRepo) RemoveCartLine(_ context.Context, userID, productID string) error {
	k := cartKey{userID, productID}
	delete(f.cart, k)
	delete(f.cartSeq, k)
	return nil
}

func (f *fakeCartRepo) GetWishlist(_ context.Context, userID string) ([]entity.Product, error) {
	type row struct {
		key cartKey
		seq int
	}
	rows := make([]row, 0)
	for k, s := range f.wishlist {
		if k.userID == userID {
			rows = append(rows, row{k, s})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	out := make([]entity.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, *f.products.products[r.key.productID])
	}
	return out, nil
}

func (f *fakeCartRepo) AddToWishlist(_ context.Context, userID, productID string) error {
	k := cartKey{userID, productID}
	if _, ok := f.wishlist[k]; !ok {
		f.seq++
		f.wishlist[k] = f.seq
	}
	return nil
}

func (f *fakeCartRepo) RemoveFromWishlist(_ context.Context, userID, productID string) error {
	delete(f.wishlist, cartKey{userID, productID})
	return nil
}

type fakeLibraryRepo struct {
	products *fakeProductRepo
	owned    map[string][]string // userID -> product IDs in grant order
}

func newFakeLibraryRepo(products *fakeProductRepo) *fakeLibraryRepo {
	return &fakeLibraryRepo{products: products, owned: map[string][]string{}}
}

func (f *fakeLibraryRepo) Grant(_ context.Context, userID, productID string) error {
	for _, id := range f.owned[userID] {
		if id == productID {
			return nil
		}
	}
	f.owned[userID] = append(f.owned[userID], productID)
	return nil
}

func (f *fakeLibraryRepo) GetByUser(_ context.Context, userID string) (*entity.Library, error) {
	games := make([]entity.Product, 0, len(f.owned[userID]))
	for _, id := range f.owned[userID] {
		if p, ok := f.products.products[id]; ok {
			games = append(games, *p)
		}
	}
	return &entity.Library{ID: "lib-" + userID, UserID: userID, Games: games}, nil
}

type fakeOrderRepo struct {
	orders    map[string]*entity.Order
	byAttempt map[string]string // idempotency key -> order ID
	libraries *fakeLibraryRepo
	carts     *fakeCartRepo
}

func newFakeOrderRepo(libraries *fakeLibraryRepo, carts *fakeCartRepo) *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:    map[string]*entity.Order{},
		byAttempt: map[string]string{},
		libraries: libraries,
		carts:     carts,
	}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	o.CreatedAt = time.Now()
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) CreateCheckout(ctx context.Context, o *entity.Order, idempotencyKey string) (bool, error) {
	if existingID, ok := f.byAttempt[idempotencyKey]; ok {
		stored := f.orders[existingID]
		*o = *stored
		return true, nil
	}
	if err := f.Create(ctx, o); err != nil {
		return false, err
	}
	f.byAttempt[idempotencyKey] = o.ID
	for _, item := range o.Items {
		if err := f.libraries.Grant(ctx, o.UserID, item.ProductID); err != nil {
			return false, err
		}
		if err := f.carts.RemoveCartLine(ctx, o.UserID, item.ProductID); err != nil {
			return false, err
		}
	}
	return false, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	f := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

type fakeNewsRepo struct {
	articles map[string]*entity.News
}

func newFakeNewsRepo(articles ...*entity.News) *fakeNewsRepo {
	f := &fakeNewsRepo{articles: map[string]*entity.News{}}
	for _, n := range articles {
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		f.articles[n.ID] = n
	}
	return f
}

func (f *fakeNewsRepo) Create(_ context.Context, n *entity.News) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Category == "" {
		n.Category = "General"
	}
	if n.PublishedDate.IsZero() {
		n.PublishedDate = time.Now()
	}
	n.CreatedAt = time.Now()
	n.UpdatedAt = n.CreatedAt
	cp := *n
	f.articles[n.ID] = &cp
	return nil
}

func (f *fakeNewsRepo) Update(_ context.Context, n *entity.News) error {
	stored, ok := f.articles[n.ID]
	if !ok {
		return repo.ErrNotFound
	}
	n.PublishedDate = stored.PublishedDate
	n.CreatedAt = stored.CreatedAt
	n.UpdatedAt = time.Now()
	cp := *n
	f.articles[n.ID] = &cp
	return nil
}

func (f *fakeNewsRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.articles[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.articles, id)
	return nil
}

func (f *fakeNewsRepo) GetByID(_ context.Context, id string) (*entity.News, error) {
	n, ok := f.articles[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNewsRepo) List(_ context.Context) ([]entity.News, error) {
	out := make([]entity.News, 0, len(f.articles))
	for _, n := range f.articles {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedDate.After(out[j].PublishedDate) })
	return out, nil
}

type fakeCommentRepo struct {
	comments map[string]*entity.Comment   // comment ID -> comment (replies inline)
	order    []string                     // insertion order of comment IDs
	likes    map[string]map[string]string // comment ID -> user set
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		comments: map[string]*entity.Comment{},
		likes:    map[string]map[string]string{},
	}
}

func (f *fakeCommentRepo) Insert(_ context.Context, c *entity.Comment) error {
	c.Timestamp = time.Now()
	cp := *c
	f.comments[c.ID] = &cp
	f.order = append(f.order, c.ID)
	return nil
}

func (f *fakeCommentRepo) ListByProduct(_ context.Context, productID string) ([]entity.Comment, error) {
	out := make([]entity.Comment, 0)
	for _, id := range f.order {
		c := f.comments[id]
		if c.ProductID != productID {
			continue
		}
		cp := *c
		cp.Likes = len(f.likes[id])
		cp.Replies = append([]entity.Reply{}, c.Replies...)
		out = append(out, cp)
	}
	return out, nil
}

func (f *fakeCommentRepo) Get(_ context.Context, productID, commentID string) (*entity.Comment, error) {
	c, ok := f.comments[commentID]
	if !ok || c.ProductID != productID {
		return nil, repo.ErrNoComment
	}
	cp := *c
	cp.Likes = len(f.likes[commentID])
	cp.Replies = nil
	return &cp, nil
}

func (f *fakeCommentRepo) UpdateText(_ context.Context, productID, commentID, text string) error {
	c, ok := f.comments[commentID]
	if !ok || c.ProductID != productID {
		return repo.ErrNoComment
	}
	c.Text = text
	return nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, productID, commentID string) error {
	c, ok := f.comments[commentID]
	if !ok || c.ProductID != productID {
		return nil
	}
	delete(f.comments, commentID)
	delete(f.likes, commentID)
	for i, id := range f.order {
		if id == commentID {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeCommentRepo) Like(_ context.Context, productID, commentID, userID string) (int, error) {
	c, ok := f.comments[commentID]
	if !ok || c.ProductID != productID {
		return 0, repo.ErrNoComment
	}
	if f.likes[commentID] == nil {
		f.likes[commentID] = map[string]string{}
	}
	f.likes[commentID][userID] = userID
	return len(f.likes[commentID]), nil
}

func (f *fakeCommentRepo) InsertReply(_ context.Context, productID, commentID string, r *entity.Reply) error {
	c, ok := f.comments[commentID]
	if !ok || c.ProductID != productID {
		return repo.ErrNoComment
	}
	r.Timestamp = time.Now()
	c.Replies = append(c.Replies, *r)
	return nil
}

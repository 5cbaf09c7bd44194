package ordering

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/ordering"
	"github.com/orderhub/backend/internal/domain/shared"
)

type memOrders struct {
	orders map[uuid.UUID]*ordering.BuyerOrder
}

func (m *memOrders) Save(_ context.Context, order *ordering.BuyerOrder) error {
	m.orders[order.ID] = order
	return nil
}

func (m *memOrders) FindByID(_ context.Context, id uuid.UUID) (*ordering.BuyerOrder, error) {
	if order, ok := m.orders[id]; ok {
		return order, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memOrders) FindBasket(_ context.Context, buyerID uuid.UUID) (*ordering.BuyerOrder, error) {
	for _, order := range m.orders {
		if order.BuyerID == buyerID && order.IsBasket() {
			return order, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memOrders) FindBySellerOrderID(_ context.Context, sellerOrderID uuid.UUID) (*ordering.BuyerOrder, error) {
	for _, order := range m.orders {
		if order.FindSellerOrder(sellerOrderID) != nil {
			return order, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memOrders) ListPlaced(_ context.Context, buyerID uuid.UUID, _ shared.Filter) ([]*ordering.BuyerOrder, error) {
	var out []*ordering.BuyerOrder
	for _, order := range m.orders {
		if order.BuyerID == buyerID && !order.IsBasket() {
			out = append(out, order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memOrders) ListSellerOrdersByShop(_ context.Context, shopID uuid.UUID, _ shared.Filter) ([]*ordering.SellerOrder, error) {
	var out []*ordering.SellerOrder
	for _, order := range m.orders {
		for _, so := range order.SellerOrders {
			if so.ShopID == shopID && so.State != ordering.SellerOrderStateBasket {
				out = append(out, so)
			}
		}
	}
	return out, nil
}

func (m *memOrders) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.orders, id)
	return nil
}

type memContacts struct {
	contacts map[uuid.UUID]*ordering.Contact
	inUse    map[uuid.UUID]bool
}

func (m *memContacts) Save(_ context.Context, contact *ordering.Contact) error {
	m.contacts[contact.ID] = contact
	return nil
}

func (m *memContacts) FindByID(_ context.Context, id uuid.UUID) (*ordering.Contact, error) {
	if contact, ok := m.contacts[id]; ok {
		return contact, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memContacts) FindActive(_ context.Context, buyerID, contactID uuid.UUID) (*ordering.Contact, error) {
	contact, ok := m.contacts[contactID]
	if !ok || contact.BuyerID != buyerID || contact.IsDeleted {
		return nil, shared.ErrNotFound
	}
	return contact, nil
}

func (m *memContacts) InUse(_ context.Context, contactID uuid.UUID) (bool, error) {
	return m.inUse[contactID], nil
}

func (m *memContacts) ListByBuyer(_ context.Context, buyerID uuid.UUID) ([]*ordering.Contact, error) {
	var out []*ordering.Contact
	for _, contact := range m.contacts {
		if contact.BuyerID == buyerID {
			out = append(out, contact)
		}
	}
	return out, nil
}

type memShops struct {
	shops map[uuid.UUID]*catalog.Shop
}

func (m *memShops) Save(_ context.Context, shop *catalog.Shop) error {
	m.shops[shop.ID] = shop
	return nil
}

func (m *memShops) FindByID(_ context.Context, id uuid.UUID) (*catalog.Shop, error) {
	if shop, ok := m.shops[id]; ok {
		return shop, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memShops) FindByOwner(_ context.Context, ownerID uuid.UUID) (*catalog.Shop, error) {
	for _, shop := range m.shops {
		if shop.OwnerID == ownerID {
			return shop, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memShops) FindByName(_ context.Context, name string) (*catalog.Shop, error) {
	for _, shop := range m.shops {
		if shop.Name == name {
			return shop, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memShops) ListOpen(_ context.Context) ([]*catalog.Shop, error) {
	var out []*catalog.Shop
	for _, shop := range m.shops {
		if shop.IsOpen {
			out = append(out, shop)
		}
	}
	return out, nil
}

type memListings struct {
	listings map[uuid.UUID]*catalog.Listing
}

func (m *memListings) Save(_ context.Context, l *catalog.Listing) error {
	m.listings[l.ID] = l
	return nil
}

func (m *memListings) SaveBatch(ctx context.Context, listings []*catalog.Listing) error {
	for _, l := range listings {
		if err := m.Save(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

func (m *memListings) FindByID(_ context.Context, id uuid.UUID) (*catalog.Listing, error) {
	if l, ok := m.listings[id]; ok {
		return l, nil
	}
	return nil, shared.ErrNotFound
}

func (m *memListings) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*catalog.Listing, error) {
	var out []*catalog.Listing
	for _, id := range ids {
		if l, ok := m.listings[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memListings) FindByShopAndExternalID(_ context.Context, shopID uuid.UUID, externalID int64) (*catalog.Listing, error) {
	for _, l := range m.listings {
		if l.ShopID == shopID && l.ExternalID == externalID {
			return l, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memListings) ListByShop(_ context.Context, shopID uuid.UUID) ([]*catalog.Listing, error) {
	var out []*catalog.Listing
	for _, l := range m.listings {
		if l.ShopID == shopID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memListings) ListAvailable(_ context.Context, _ catalog.CatalogQuery) ([]*catalog.Listing, error) {
	var out []*catalog.Listing
	for _, l := range m.listings {
		if l.Quantity > 0 {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memListings) DelistAbsent(_ context.Context, shopID uuid.UUID, keep []int64) (int64, error) {
	keepSet := make(map[int64]bool, len(keep))
	for _, id := range keep {
		keepSet[id] = true
	}
	var touched int64
	for _, l := range m.listings {
		if l.ShopID == shopID && !keepSet[l.ExternalID] && l.Quantity > 0 {
			l.Delist()
			touched++
		}
	}
	return touched, nil
}

func (m *memListings) ReserveStock(_ context.Context, id uuid.UUID, qty int) error {
	l, ok := m.listings[id]
	if !ok {
		return shared.ErrNotFound
	}
	if l.Quantity < qty {
		return shared.ErrInsufficientStock
	}
	l.Quantity -= qty
	return nil
}

func (m *memListings) ReleaseStock(_ context.Context, id uuid.UUID, qty int) error {
	l, ok := m.listings[id]
	if !ok {
		return shared.ErrNotFound
	}
	l.Quantity += qty
	return nil
}

type capturePublisher struct {
	events []shared.DomainEvent
}

func (p *capturePublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func newMemRepos() Repositories {
	return Repositories{
		Orders:   &memOrders{orders: map[uuid.UUID]*ordering.BuyerOrder{}},
		Contacts: &memContacts{contacts: map[uuid.UUID]*ordering.Contact{}, inUse: map[uuid.UUID]bool{}},
		Shops:    &memShops{shops: map[uuid.UUID]*catalog.Shop{}},
		Listings: &memListings{listings: map[uuid.UUID]*catalog.Listing{}},
	}
}

package commands

import (
	"context"
	"errors"
	"time"

	"moving/internal/core/domain/model/catalog"
	"moving/internal/core/domain/model/guestorder"
	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/order"
	"moving/internal/core/domain/services"
	"moving/internal/pkg/errs"
)

// reconcileRepos is what converting a guest draft into an order touches.
type reconcileRepos interface {
	GuestOrderRepoFactory
	OrderRepoFactory
	CatalogRepoFactory
}

type orderRepos interface {
	OrderRepoFactory
	CatalogRepoFactory
}

// quote loads the catalog entries referenced by input and prices it.
// With lockProducts the product rows stay locked until the transaction ends.
func quote(
	ctx context.Context,
	repos CatalogRepoFactory,
	engine services.PricingEngine,
	input services.QuoteInput,
	lockProducts bool,
) (services.Quote, services.Catalog, error) {
	factorIDs := append([]int64(nil), input.FactorIDs...)
	for _, h := range input.HeavyItems {
		factorIDs = append(factorIDs, h.ID)
	}
	productIDs := make([]int64, 0, len(input.Products))
	for _, p := range input.Products {
		productIDs = append(productIDs, p.ID)
	}

	var factors []*catalog.PricingFactor
	if len(factorIDs) > 0 {
		found, err := repos.PricingFactorRepository().FindByIDs(ctx, factorIDs)
		if err != nil {
			return services.Quote{}, services.Catalog{}, err
		}
		factors = found
	}

	var products []*catalog.PackagingProduct
	if len(productIDs) > 0 {
		productRepo := repos.PackagingProductRepository()
		var err error
		if lockProducts {
			products, err = productRepo.FindByIDsForUpdate(ctx, productIDs)
		} else {
			products, err = productRepo.FindByIDs(ctx, productIDs)
		}
		if err != nil {
			return services.Quote{}, services.Catalog{}, err
		}
	}

	cat := services.NewCatalog(factors, products)
	q, err := engine.Quote(input, cat)
	if err != nil {
		return services.Quote{}, services.Catalog{}, err
	}
	return q, cat, nil
}

func quoteInputFromGuestOrder(g *guestorder.GuestOrder) services.QuoteInput {
	input := services.QuoteInput{
		ServiceType:  g.ServiceType(),
		Origin:       g.Origin(),
		Workers:      g.Workers(),
		WalkDistance: g.WalkDistance(),
		HeavyItems:   g.HeavyItems(),
		FactorIDs:    g.FactorIDs(),
		Products:     g.Cart(),
	}
	if g.Destination() != nil {
		input.Destination = *g.Destination()
	}
	return input
}

// placeOrder prices input, reserves stock and stores a new order.
// Every domain check runs before the first write.
func placeOrder(
	ctx context.Context,
	repos orderRepos,
	engine services.PricingEngine,
	customerID kernel.UUID,
	input services.QuoteInput,
	scheduledAt *time.Time,
	skipPayment bool,
	guestOrderID *kernel.UUID,
) (*order.Order, error) {
	q, cat, err := quote(ctx, repos, engine, input, true)
	if err != nil {
		return nil, err
	}

	newOrder := order.NewOrder
	if skipPayment {
		newOrder = order.NewOrderPendingApproval
	}
	o, err := newOrder(customerID, input.ServiceType, input.Origin, input.Destination, scheduledAt)
	if err != nil {
		return nil, err
	}
	if guestOrderID != nil {
		if err = o.ConvertedFrom(*guestOrderID); err != nil {
			return nil, err
		}
	}

	items, err := q.Items()
	if err != nil {
		return nil, err
	}
	if err = o.Price(items, q.Surcharges()); err != nil {
		return nil, err
	}

	reserved := make([]*catalog.PackagingProduct, 0, len(items))
	for _, item := range items {
		p := cat.Products[item.ProductID()]
		if err = p.Reserve(item.Quantity()); err != nil {
			return nil, err
		}
		reserved = append(reserved, p)
	}

	productRepo := repos.PackagingProductRepository()
	for _, p := range reserved {
		if err = productRepo.Update(ctx, p); err != nil {
			return nil, err
		}
	}

	if err = repos.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// reconcileGuestOrder converts the draft into an order owned by userID and
// retires the draft. The draft row is locked first, so of two concurrent
// calls the second sees the first one's result and gets ErrAlreadyReconciled.
func reconcileGuestOrder(
	ctx context.Context,
	repos reconcileRepos,
	engine services.PricingEngine,
	userID kernel.UUID,
	guestOrderID kernel.UUID,
	now time.Time,
) (*order.Order, error) {
	guestRepo := repos.GuestOrderRepository()
	g, err := guestRepo.GetForUpdate(ctx, guestOrderID)
	if err != nil {
		return nil, err
	}
	if g.IsReconciled() {
		return nil, guestorder.ErrAlreadyReconciled
	}
	if err = g.Ready(); err != nil {
		return nil, err
	}

	id := g.ID()
	o, err := placeOrder(ctx, repos, engine, userID, quoteInputFromGuestOrder(g), g.ScheduledAt(), false, &id)
	if err != nil {
		return nil, err
	}

	if err = g.Reconcile(userID, o.ID(), now); err != nil {
		return nil, err
	}
	if err = guestRepo.Update(ctx, g); err != nil {
		return nil, err
	}
	return o, nil
}

// isDomainError tells rule, validation and lookup failures apart from
// infrastructure failures.
func isDomainError(err error) bool {
	return errors.Is(err, errs.ErrRuleViolation) ||
		errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}

package ticketrepo_test

import (
	"context"
	"testing"
	"time"

	"moving/internal/adapters/out/postgres/pgtest"
	"moving/internal/adapters/out/postgres/ticketrepo"
	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/ticket"
	"moving/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type TicketRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg   *pgtest.Database
	repo *ticketrepo.GormTicketRepository
}

func (suite *TicketRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background(), &ticketrepo.TicketDTO{}, &ticketrepo.MessageDTO{})
	suite.Require().NoError(err)
	suite.pg = pg
	suite.repo = ticketrepo.NewGormTicketRepository(pg.DB)
}

func (suite *TicketRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate("tickets", "ticket_messages"))
}

func (suite *TicketRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *TicketRepositoryIntegrationTestSuite) TestAdd_StoresFirstMessage() {
	ctx := context.Background()
	owner := suite.actor(kernel.RoleCustomer)
	orderID := int64(42)
	tk, err := ticket.NewTicket(owner, "Broken box", "One box arrived torn", ticket.PriorityHigh, &orderID, time.Now())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repo.Add(ctx, tk))
	suite.Positive(tk.ID())

	got, err := suite.repo.Get(ctx, tk.ID())
	suite.Require().NoError(err)
	suite.Equal("Broken box", got.Subject())
	suite.Equal(ticket.StatusOpen, got.Status())
	suite.Equal(ticket.PriorityHigh, got.Priority())
	suite.Require().NotNil(got.OrderID())
	suite.Equal(orderID, *got.OrderID())
	suite.Require().Len(got.Messages(), 1)
	suite.Equal(owner.UserID, got.Messages()[0].SenderID)
}

func (suite *TicketRepositoryIntegrationTestSuite) TestUpdate_AppendsReplies() {
	ctx := context.Background()
	owner := suite.actor(kernel.RoleCustomer)
	admin := suite.actor(kernel.RoleAdmin)
	tk, err := ticket.NewTicket(owner, "Late driver", "Nobody came", ticket.PriorityNormal, nil, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(ctx, tk))

	loaded, err := suite.repo.GetForUpdate(ctx, tk.ID())
	suite.Require().NoError(err)
	_, err = loaded.Reply(admin, "A driver is on the way", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Update(ctx, loaded))

	_, err = loaded.Reply(owner, "Thanks", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Update(ctx, loaded))

	got, err := suite.repo.Get(ctx, tk.ID())
	suite.Require().NoError(err)
	suite.Equal(ticket.StatusOpen, got.Status())
	suite.Require().Len(got.Messages(), 3)
	suite.Equal(1, got.Messages()[0].Seq)
	suite.True(got.Messages()[1].IsAdmin)
	suite.Equal("Thanks", got.Messages()[2].Body)
}

func (suite *TicketRepositoryIntegrationTestSuite) TestUpdate_Close() {
	ctx := context.Background()
	owner := suite.actor(kernel.RoleCustomer)
	tk, err := ticket.NewTicket(owner, "Invoice", "Need an invoice", ticket.PriorityLow, nil, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(ctx, tk))

	suite.Require().NoError(tk.Close(owner, time.Now()))
	suite.Require().NoError(suite.repo.Update(ctx, tk))

	got, err := suite.repo.Get(ctx, tk.ID())
	suite.Require().NoError(err)
	suite.Equal(ticket.StatusClosed, got.Status())
	suite.Len(got.Messages(), 1)
}

func (suite *TicketRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repo.Get(context.Background(), 777)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TicketRepositoryIntegrationTestSuite) actor(role kernel.Role) kernel.Actor {
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	suite.Require().NoError(err)
	return a
}

func TestTicketRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TicketRepositoryIntegrationTestSuite))
}

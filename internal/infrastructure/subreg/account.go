package subreg

import (
	"context"
	"errors"

	"github.com/opslake/subregops/internal/domain"
	"github.com/opslake/subregops/internal/domain/entity"
	"github.com/opslake/subregops/internal/infrastructure/soap"
)

// GetCredit returns the account balance.
func (c *Client) GetCredit(ctx context.Context) (*entity.Credit, error) {
	data, err := c.call(ctx, "Get_Credit", nil)
	if err != nil {
		return nil, domain.WrapOp("get credit", err)
	}
	credit := data.Get("credit")
	if credit == nil {
		credit = data
	}
	return &entity.Credit{
		Amount:   credit.Get("amount").Float(),
		Currency: credit.Get("currency").String(),
	}, nil
}

// ListUsers lists the reseller's sub-accounts.
func (c *Client) ListUsers(ctx context.Context) ([]entity.User, error) {
	data, err := c.call(ctx, "Users_List", nil)
	if err != nil {
		return nil, domain.WrapOp("list users", err)
	}
	items := data.Get("users").List()
	users := make([]entity.User, 0, len(items))
	for _, item := range items {
		users = append(users, entity.User{
			ID:       item.Get("id").String(),
			Login:    item.Get("login").String(),
			Credit:   item.Get("credit").Float(),
			Currency: item.Get("currency").String(),
		})
	}
	return users, nil
}

// ListContacts lists every contact object on the account.
func (c *Client) ListContacts(ctx context.Context) ([]entity.Contact, error) {
	data, err := c.call(ctx, "Contacts_List", nil)
	if err != nil {
		return nil, domain.WrapOp("list contacts", err)
	}
	items := data.Get("contacts").List()
	contacts := make([]entity.Contact, 0, len(items))
	for _, item := range items {
		contacts = append(contacts, entity.Contact{
			ID:      item.Get("id").String(),
			RegID:   item.Get("regid").String(),
			Name:    item.Get("name").String(),
			Surname: item.Get("surname").String(),
			Org:     item.Get("org").String(),
			Street:  item.Get("street").String(),
			City:    item.Get("city").String(),
			PC:      item.Get("pc").String(),
			CC:      item.Get("cc").String(),
			Phone:   item.Get("phone").String(),
			Email:   item.Get("email").String(),
		})
	}
	return contacts, nil
}

// PollGet returns the oldest unacknowledged registrar event, or nil when the
// queue is empty.
func (c *Client) PollGet(ctx context.Context) (*entity.PollEvent, error) {
	data, err := c.call(ctx, "POLL_Get", nil)
	if err != nil {
		if errors.Is(err, domain.ErrPollEmpty) {
			return nil, nil
		}
		return nil, domain.WrapOp("poll get", err)
	}
	poll := data.Get("poll")
	if poll == nil {
		poll = data
	}
	if poll.Get("id").Int() == 0 {
		return nil, nil
	}
	return &entity.PollEvent{
		ID:      poll.Get("id").Int(),
		Type:    poll.Get("type").String(),
		Message: poll.Get("message").String(),
		Created: poll.Get("created").String(),
	}, nil
}

// ListPricelists lists the price tables defined on the account.
func (c *Client) ListPricelists(ctx context.Context) ([]entity.Pricelist, error) {
	data, err := c.call(ctx, "Pricelist", nil)
	if err != nil {
		return nil, domain.WrapOp("list pricelists", err)
	}
	items := data.Get("pricelists").List()
	pricelists := make([]entity.Pricelist, 0, len(items))
	for _, item := range items {
		pricelists = append(pricelists, entity.Pricelist{
			ID:       item.Get("id").String(),
			Name:     item.Get("name").String(),
			Currency: item.Get("currency").String(),
			Default:  item.Get("default").Int() == 1,
		})
	}
	return pricelists, nil
}

// ListDocuments lists files uploaded or generated on the account.
func (c *Client) ListDocuments(ctx context.Context) ([]entity.Document, error) {
	data, err := c.call(ctx, "List_Documents", nil)
	if err != nil {
		return nil, domain.WrapOp("list documents", err)
	}
	items := data.Get("documents").List()
	documents := make([]entity.Document, 0, len(items))
	for _, item := range items {
		documents = append(documents, entity.Document{
			ID:       item.Get("id").String(),
			Name:     item.Get("name").String(),
			Type:     item.Get("type").String(),
			Filetype: item.Get("filetype").String(),
		})
	}
	return documents, nil
}

// PollAck acknowledges one event so the next PollGet advances the queue.
func (c *Client) PollAck(ctx context.Context, id int) error {
	if id <= 0 {
		return domain.RequiredField("poll id")
	}
	_, err := c.call(ctx, "POLL_Ack", soap.Params{
		{Key: "pollid", Value: id},
	})
	return domain.WrapOp("poll ack", err)
}

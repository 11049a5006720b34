package service

import (
	"taskplane.app/api-server/internal/store"
)

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	tokens   *TokenManager
}

func NewServices(stores *store.Stores, txRunner TxRunner, tokens *TokenManager) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		tokens:   tokens,
	}
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.stores.Users(), s.stores.Organizations(), s.txRunner, s.tokens)
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores.Users())
}

func (s *Services) Organizations() OrganizationService {
	return NewOrganizationService(s.stores.Organizations())
}

func (s *Services) Projects() ProjectService {
	return NewProjectService(s.stores.Projects(), s.stores.Tasks())
}

func (s *Services) Tasks() TaskService {
	return NewTaskService(s.stores.Tasks(), s.stores.Projects(), s.stores.Users(), s.txRunner)
}

func (s *Services) Tokens() *TokenManager {
	return s.tokens
}

func (s *Services) UserStore() store.UserStore {
	return s.stores.Users()
}

package domain

// Role — вариант идентичности: анонимный посетитель, покупатель или администратор.
type Role uint8

const (
	RoleAnonymous Role = iota
	RoleCustomer
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// Identity описывает субъекта, от имени которого выполняются операции.
// Для анонимного посетителя ID — локально сгенерированный идентификатор корзины.
type Identity struct {
	ID    string
	Email string
	Role  Role
}

func Anonymous(id string) Identity {
	return Identity{ID: id, Role: RoleAnonymous}
}

func Customer(id string, email string) Identity {
	return Identity{ID: id, Email: email, Role: RoleCustomer}
}

func Admin(id string, email string) Identity {
	return Identity{ID: id, Email: email, Role: RoleAdmin}
}

func (i Identity) IsAuthenticated() bool {
	return i.Role != RoleAnonymous && i.ID != ""
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin && i.ID != ""
}

// Key — ключ scope подписки. Роль входит в ключ, чтобы анонимный id не пересекался с id пользователя.
func (i Identity) Key() string {
	return i.Role.String() + ":" + i.ID
}

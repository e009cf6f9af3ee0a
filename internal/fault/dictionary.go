package fault

// Supported response languages. Unknown languages silently fall back to
// DefaultLanguage.
const (
	LangEN = "en"
	LangES = "es"

	DefaultLanguage = LangEN
)

// dictionary is the single source of truth for user-facing message text:
// status → category → language → message. Every registered status carries
// a default category; an unregistered status renders as 500/default.
var dictionary = map[int]map[string]map[string]string{
	200: {
		CategoryDefault: {
			LangEN: "Successful",
			LangES: "Realizado correctamente",
		},
		"delete": {
			LangEN: "Deleted successfully",
			LangES: "Eliminado correctamente",
		},
		"update": {
			LangEN: "Updated successfully",
			LangES: "Actualizado correctamente",
		},
	},
	400: {
		CategoryDefault: {
			LangEN: "Bad request",
			LangES: "Petición incorrecta",
		},
		"pageOutOfRange": {
			LangEN: "Page is out of range",
			LangES: "La página está fuera del rango",
		},
		"user": {
			LangEN: "Error creating user",
			LangES: "Error creando usuario",
		},
	},
	401: {
		CategoryDefault: {
			LangEN: "Unauthorized",
			LangES: "No autorizado",
		},
		"token": {
			LangEN: "Valid token must be provided",
			LangES: "Debe proporcionar un token válido",
		},
		"credentials": {
			LangEN: "Invalid credentials",
			LangES: "Credenciales inválidas",
		},
	},
	403: {
		CategoryDefault: {
			LangEN: "Request forbidden",
			LangES: "Petición prohibida",
		},
	},
	404: {
		CategoryDefault: {
			LangEN: "Not found",
			LangES: "No encontrado",
		},
		"user": {
			LangEN: "User not found",
			LangES: "Usuario no encontrado",
		},
		"results": {
			LangEN: "No results found",
			LangES: "No se encontraron resultados",
		},
	},
	409: {
		CategoryDefault: {
			LangEN: "Conflict",
			LangES: "Conflicto",
		},
		"userAlreadyExists": {
			LangEN: "User is already registered",
			LangES: "Usuario ya está registrado",
		},
		"emailAlreadyExists": {
			LangEN: "This email is already registered",
			LangES: "Este correo ya está registrado",
		},
		"productAlreadyExists": {
			LangEN: "This product is already registered",
			LangES: "Este producto ya está registrado",
		},
	},
	500: {
		CategoryDefault: {
			LangEN: "Internal server error",
			LangES: "Error interno del servidor",
		},
	},
}

// Message selects the localized text for a (status, category) pair.
// Fallback order: unregistered status → 500/default, unknown category →
// default category of the status, missing language → DefaultLanguage.
func Message(status int, category, lang string) string {
	categories, ok := dictionary[status]
	if !ok {
		categories = dictionary[500]
	}

	messages, ok := categories[category]
	if !ok {
		messages = categories[CategoryDefault]
	}

	text, ok := messages[lang]
	if !ok {
		text = messages[DefaultLanguage]
	}

	return text
}

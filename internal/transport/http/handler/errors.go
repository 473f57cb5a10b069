package handler

const (
	errInternalServer = "Internal server error"

	errDuplicateEmail = "User already exists in the database"
	errUnknownEmail   = "User does not exist in the database"
	errBadCredentials = "Invalid email or password"
	errUserNotFound   = "User not found. Please register."

	errNoNotes        = "No notes found for this user."
	errMissingTerm    = "Search term is required"
	errNoteNotFound   = "Note not found or you don't have access to it."
	errNoteNotUpdated = "Note not found or does not belong to the user."
	errNoteNotDeleted = "Note not found."
	errEmptyPatch     = "At least one field (title, content, or styles) is required."
)

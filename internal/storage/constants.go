package storage

// HSet Keys
const (
	//* user

	// User HSet field for email.
	User_HSet_Email = "email"
	// User HSet field for bcrypt password hash.
	User_HSet_Password = "password"
	// User HSet field for first name.
	User_HSet_FirstName = "first_name"
	// User HSet field for last name.
	User_HSet_LastName = "last_name"

	//* token

	// Token HSet field for owner user id.
	Token_HSet_UserID = "user_id"
	// Token HSet field for creation date.
	Token_HSet_CreatedAt = "created_at"

	//* ingredient

	// Ingredient HSet field for name.
	Ingredient_HSet_Name = "name"
	// Ingredient HSet field for owner user id.
	Ingredient_HSet_UserID = "user_id"

	//* recipe

	// Recipe HSet field for name.
	Recipe_HSet_Name = "name"
	// Recipe HSet field for text.
	Recipe_HSet_Text = "text"
	// Recipe HSet field for owner user id.
	Recipe_HSet_UserID = "user_id"
)

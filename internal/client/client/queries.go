package client

// Operation names, used as metric labels and in logs.
const (
	OpLogin      = "login"
	OpGetMe      = "getMe"
	OpRemoveBook = "removeBook"
	OpSaveBook   = "saveBook"
)

const loginMutation = `
mutation login($email: String!, $password: String!) {
  login(email: $email, password: $password) {
    token
    user {
      _id
      username
    }
  }
}`

const getMeQuery = `
query getMe {
  me {
    _id
    username
    email
    savedBooks {
      bookId
      authors
      description
      title
      image
      link
    }
  }
}`

const removeBookMutation = `
mutation removeBook($bookId: String!) {
  removeBook(bookId: $bookId) {
    _id
    savedBooks {
      bookId
    }
  }
}`

const saveBookMutation = `
mutation saveBook($bookData: BookInput!) {
  saveBook(bookData: $bookData) {
    _id
    username
    email
    savedBooks {
      bookId
      authors
      description
      title
      image
      link
    }
  }
}`

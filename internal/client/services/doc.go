// Package services contains the application services of the bookshelf
// client. They compose the GraphQL gateway, the credential store, the
// normalized cache and the local bookmark cache, so controllers only deal with
// one call per user action.
package services

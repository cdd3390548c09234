// Package gatesdk is the Go client for the doorman access service.
//
// Unauthenticated operations (login, register, invite lookup) hang off
// SDKClient; a successful login or registration returns a Session, which
// carries the bearer token for authenticated operations.
//
//	client := gatesdk.NewSDKClient("http://localhost:8080")
//	session, err := client.Login(ctx, "alice", "password")
//	if err != nil { ... }
//	invite, err := session.CreateInvite(ctx)
package gatesdk

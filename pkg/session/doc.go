/*
Package session drives the single live intake conversation.

A Conversation wraps the pure runtime engine with everything that involves time:
the short pause before a scripted bot reply, the round-trip to the remote
assistant, and the "New Case" reset that must win over both. Intents are
serialized; every scheduled callback carries the generation it was created in
and is dropped if a reset happened since.
*/
package session

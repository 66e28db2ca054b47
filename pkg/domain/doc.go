/*
Package domain contains the core domain models for the cyberdesk intake engine.

It defines the decision tree (Document, Node, Option), the transcript (Message) and the
live session snapshot (State). This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Node: A single step of the scripted interview with a prompt and choices.
  - Option: A selectable choice. Its Intent is decided when the document is loaded.
  - Message: A transcript entry from the officer or the bot.
  - State: The runtime snapshot of a case (current node, transcript, checklist, mode).
*/
package domain

// Package todo owns the task list: its data model, the mutations users
// perform on it, the filtered view the UI renders, and its persistence.
//
// The list is stored as a JSON array under the "todo-list-app" key of a
// key-value store:
//
//	[
//	  {
//	    "id": "0b6f3c1e-6a0f-4e55-9d0c-6f1f6d2b8a41",
//	    "text": "Buy milk",
//	    "completed": false,
//	    "favorite": true,
//	    "createdAt": "2024-01-01T00:00:00.000Z"
//	  }
//	]
//
// New tasks are prepended, so the array is most-recent-first. Numeric ids
// written by older versions are accepted and read as their decimal string.
//
// # Filters
//
//   - "all":       every task, narrowed by the search query when one is set
//   - "active":    tasks not completed
//   - "completed": completed tasks
//   - "favorites": favorite tasks
//
// The search query only applies under "all"; the other filters ignore it.
//
// # Persistence
//
// Every mutation that changes the list writes the whole list back through
// the Store's Repository. Operations on unknown ids and empty text are
// silent no-ops and do not write.
package todo

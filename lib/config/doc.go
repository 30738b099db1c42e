// Copyright 2026 The lara-task Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the taskboard configuration.
//
// Configuration comes from one YAML file named by the --config flag or
// the TASKBOARD_CONFIG environment variable. Without either, built-in
// defaults apply. A few environment variables override single values
// for scripting: TASKBOARD_DATA, TASKBOARD_SOCKET, TASKBOARD_PAGE_SIZE.
//
//	data:
//	  tasks: ${HOME}/taskboard/tasks.json.zst
//	  members: ${HOME}/taskboard/members.jsonl
//	backend:
//	  socket: ""        # empty: in-process memory backend
//	  timeout: 10s
//	view:
//	  page_size: 10
//	  sort_key: due_date
//	  sort_direction: asc
//	  search_mode: substring   # or fuzzy
//	notifications:
//	  duration: 4s
//	  max: 3
package config

package repository

const (
	createVideoQuery = `INSERT INTO videos (user_id, url, status, created_at, updated_at)
					VALUES ($1, $2, $3, now(), now()) RETURNING *`
	getVideoByIDQuery = `SELECT video_id, user_id, url, title, description, transcript, status, audio_chunks, error_message, created_at, updated_at
					FROM videos WHERE video_id = $1`
	getVideoByURLQuery = `SELECT video_id, user_id, url, title, description, transcript, status, audio_chunks, error_message, created_at, updated_at
					FROM videos WHERE user_id = $1 AND url = $2`
	getVideosByUserIDQuery = `SELECT video_id, user_id, url, title, description, transcript, status, audio_chunks, error_message, created_at, updated_at
					FROM videos WHERE user_id = $1 ORDER BY created_at DESC OFFSET $2 LIMIT $3`
	getTotalVideosByUserIDQuery = `SELECT COUNT(video_id) FROM videos WHERE user_id = $1`
	updateVideoQuery            = `UPDATE videos
									SET title = $1,
									    description = $2,
									    transcript = $3,
									    status = $4,
									    audio_chunks = $5,
									    error_message = $6,
									    updated_at = now()
									WHERE video_id = $7`
	updateStatusQuery = `UPDATE videos SET status = $1, updated_at = now() WHERE video_id = $2`
	deleteVideoQuery  = `DELETE FROM videos WHERE video_id = $1`
)
